package customer

import "errors"

var ErrCustomerExists = errors.New("customer with this phone or GST number already exists")
