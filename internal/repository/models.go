package repository

// Models lists the GORM models backing the SQL stores, in migration order.
func Models() []any {
	return []any{
		&cityModel{},
		&locationModel{},
		&customerModel{},
		&agentModel{},
		&bookingModel{},
	}
}
