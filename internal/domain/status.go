package domain

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal states accept no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentVerified || s == PaymentFailed
}

// AdminTargets are the states an admin may set directly. Confirmed is only
// reachable through payment verification.
var AdminTargets = []OrderStatus{StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

// AdminSources are the states an admin update may start from.
var AdminSources = []OrderStatus{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped}

func CanAdminSet(from, to OrderStatus) bool {
	if from.Terminal() {
		return false
	}
	for _, t := range AdminTargets {
		if t == to {
			return true
		}
	}
	return false
}

func CanCustomerCancel(from OrderStatus) bool {
	return from == StatusPending
}

func CanReconcile(p PaymentStatus) bool {
	return p == PaymentPending
}
