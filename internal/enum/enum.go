package enum

// ── Group A: Stored codes (CHECK constrained in DB) ──

// Transaction sources tag where a settlement came from.
const (
	SourceBooking    = 1
	SourceQuickSale  = 2
	SourcePhoneOrder = 3
	SourceOnAccount  = 4
)

const (
	ChannelQuickSale  = "QUICK_SALE"
	ChannelPhoneOrder = "PHONE_ORDER"
	ChannelOnAccount  = "ON_ACCOUNT"
	ChannelBooking    = "BOOKING"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusSeated    = "seated"
	BookingStatusFinished  = "finished"
	BookingStatusCancelled = "cancelled"
)

// ── Group B: Borderline ──

const (
	UserRoleOwner   = "OWNER"
	UserRoleManager = "MANAGER"
	UserRoleCashier = "CASHIER"
	UserRoleWaiter  = "WAITER"
)

// RoleRank orders roles by privilege. Unknown roles rank 0.
func RoleRank(role string) int {
	switch role {
	case UserRoleOwner:
		return 4
	case UserRoleManager:
		return 3
	case UserRoleCashier:
		return 2
	case UserRoleWaiter:
		return 1
	}
	return 0
}

const (
	PaymentMethodCash    = "CASH"
	PaymentMethodCard    = "CARD"
	PaymentMethodVoucher = "VOUCHER"
)

// ── Group C: Fixed markers ──

// DeviceDashboard marks orders entered from the web dashboard.
const DeviceDashboard = "web-dashboard"

// GuestNoName is used when a quick sale has no customer.
const GuestNoName = "No Name"

// PriceTypeDefault is applied to booking items without a price type.
const PriceTypeDefault = 1

const (
	NotificationSuccess = "success"
	NotificationError   = "destructive"
)
