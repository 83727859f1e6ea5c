package repository

import (
	"context"
	"strings"
	"time"

	"lrbook/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type chargeColumns struct {
	ItemFreightSubtotal float64 `gorm:"column:item_freight_subtotal"`
	HandlingCharges     float64 `gorm:"column:handling_charges"`
	BookDeliveryCharges float64 `gorm:"column:book_delivery_charges"`
	DoorDeliveryCharges float64 `gorm:"column:door_delivery_charges"`
	PickupCharges       float64 `gorm:"column:pickup_charges"`
	LRCharges           float64 `gorm:"column:lr_charges"`
	OtherCharges        float64 `gorm:"column:other_charges"`
	TotalAmount         float64 `gorm:"column:total_amount"`
}

// Location and party snapshots are stored as JSON documents; the codes and
// names used for filtering are copied into their own indexed columns.
type bookingModel struct {
	ID            string                  `gorm:"column:id;primaryKey;size:36"`
	LRNumber      string                  `gorm:"column:lr_number;size:32;not null;uniqueIndex:idx_bookings_lr_number"`
	LRType        string                  `gorm:"column:lr_type;size:16;not null;index"`
	FromLocation  domain.LocationSnapshot `gorm:"column:from_location;type:text;serializer:json"`
	ToLocation    domain.LocationSnapshot `gorm:"column:to_location;type:text;serializer:json"`
	FromCode      string                  `gorm:"column:from_code;size:3;index"`
	ToCode        string                  `gorm:"column:to_code;size:3;index"`
	Sender        domain.PartySnapshot    `gorm:"column:sender;type:text;serializer:json"`
	Receiver      domain.PartySnapshot    `gorm:"column:receiver;type:text;serializer:json"`
	SenderName    string                  `gorm:"column:sender_name"`
	ReceiverName  string                  `gorm:"column:receiver_name"`
	Items         []domain.BookingItem    `gorm:"column:items;type:text;serializer:json"`
	Charges       chargeColumns           `gorm:"embedded"`
	Status        string                  `gorm:"column:status;size:16;not null;index"`
	AgentID       string                  `gorm:"column:agent_id;size:36;index"`
	AgentLocation string                  `gorm:"column:agent_location"`
	CreatedAt     time.Time               `gorm:"column:created_at;index"`
	UpdatedAt     time.Time               `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	items := m.Items
	if items == nil {
		items = []domain.BookingItem{}
	}
	return &domain.Booking{
		ID:           m.ID,
		LRNumber:     m.LRNumber,
		LRType:       domain.LRType(m.LRType),
		FromLocation: m.FromLocation,
		ToLocation:   m.ToLocation,
		Sender:       m.Sender,
		Receiver:     m.Receiver,
		Items:        items,
		Charges: domain.Charges{
			ItemFreightSubtotal: m.Charges.ItemFreightSubtotal,
			HandlingCharges:     m.Charges.HandlingCharges,
			BookDeliveryCharges: m.Charges.BookDeliveryCharges,
			DoorDeliveryCharges: m.Charges.DoorDeliveryCharges,
			PickupCharges:       m.Charges.PickupCharges,
			LRCharges:           m.Charges.LRCharges,
			OtherCharges:        m.Charges.OtherCharges,
			TotalAmount:         m.Charges.TotalAmount,
		},
		Status:        domain.BookingStatus(m.Status),
		AgentID:       m.AgentID,
		AgentLocation: m.AgentLocation,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:           b.ID,
		LRNumber:     b.LRNumber,
		LRType:       string(b.LRType),
		FromLocation: b.FromLocation,
		ToLocation:   b.ToLocation,
		FromCode:     b.FromLocation.Code,
		ToCode:       b.ToLocation.Code,
		Sender:       b.Sender,
		Receiver:     b.Receiver,
		SenderName:   b.Sender.Name,
		ReceiverName: b.Receiver.Name,
		Items:        b.Items,
		Charges: chargeColumns{
			ItemFreightSubtotal: b.Charges.ItemFreightSubtotal,
			HandlingCharges:     b.Charges.HandlingCharges,
			BookDeliveryCharges: b.Charges.BookDeliveryCharges,
			DoorDeliveryCharges: b.Charges.DoorDeliveryCharges,
			PickupCharges:       b.Charges.PickupCharges,
			LRCharges:           b.Charges.LRCharges,
			OtherCharges:        b.Charges.OtherCharges,
			TotalAmount:         b.Charges.TotalAmount,
		},
		Status:        string(b.Status),
		AgentID:       b.AgentID,
		AgentLocation: b.AgentLocation,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// Create returns ErrDuplicate when the LR number is already taken.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByLRNumber(ctx context.Context, lr string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, "lr_number = ?", strings.ToUpper(strings.TrimSpace(lr)))
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if f.AgentID != "" {
		q = q.Where("agent_id = ?", f.AgentID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.LRType != "" {
		q = q.Where("lr_type = ?", string(f.LRType))
	}
	if f.FromCode != "" {
		q = q.Where("from_code = ?", domain.NormalizeCode(f.FromCode))
	}
	if f.ToCode != "" {
		q = q.Where("to_code = ?", domain.NormalizeCode(f.ToCode))
	}
	if f.DateFrom != nil {
		q = q.Where("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("created_at < ?", *f.DateTo)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Query)); s != "" {
		p := likePattern(s)
		q = q.Where("LOWER(lr_number) LIKE ? OR LOWER(sender_name) LIKE ? OR LOWER(receiver_name) LIKE ?", p, p, p)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var rows []bookingModel
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, total, nil
}

// UpdateStatus moves the booking from one status to another only if it is
// still in from. A booking in any other status yields ErrConflict.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, at time.Time) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{"status": string(to), "updated_at": at})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return translate(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrConflict
}
