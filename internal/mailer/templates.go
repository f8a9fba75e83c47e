package mailer

import "fmt"

// Email subjects and bodies for every notification type. Kept as plain
// format strings; nothing here is user-facing configuration.

func WelcomeEmail(name string) (subject, body string) {
	return "Welcome to Reclaim Market",
		fmt.Sprintf("<h2>Welcome, %s</h2><p>You have successfully registered on <b>Reclaim Market</b>.</p><p>Start trading reclaimed industrial materials and reduce waste.</p>", name)
}

func OrderPlacedEmail(materialName string) (subject, body string) {
	return "New Order Received",
		fmt.Sprintf("<h2>New Order Received</h2><p>You received a new order for:</p><p><b>%s</b></p>", materialName)
}

func OrderApprovedEmail(materialName string) (subject, body string) {
	return "Order Approved",
		fmt.Sprintf("<h2>Order Approved</h2><p>Your order for <b>%s</b> has been approved by the seller.</p>", materialName)
}

func OrderRejectedEmail(materialName string) (subject, body string) {
	return "Order Rejected",
		fmt.Sprintf("<h2>Order Rejected</h2><p>Your order for <b>%s</b> was rejected by the seller.</p>", materialName)
}

func OrderShippedEmail(materialName string) (subject, body string) {
	return "Order Shipped",
		fmt.Sprintf("<h2>Order Shipped</h2><p>Your order for <b>%s</b> has been shipped.</p>", materialName)
}

func OrderCompletedEmail(materialName string) (subject, body string) {
	return "Order Completed",
		fmt.Sprintf("<h2>Order Completed</h2><p>The order for <b>%s</b> has been successfully completed.</p>", materialName)
}

func OrderCancelledEmail(materialName string) (subject, body string) {
	return "Order Cancelled",
		fmt.Sprintf("<h2>Order Cancelled</h2><p>The order for <b>%s</b> was cancelled by an administrator.</p>", materialName)
}

func PaymentVerifiedEmail(amount string) (subject, body string) {
	return "Payment Received",
		fmt.Sprintf("<h2>Payment Received</h2><p>Your payment of <b>%s</b> has been verified.</p>", amount)
}
