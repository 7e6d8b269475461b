package i18n

const (
	MsgRequiredFields       = "required_fields"
	MsgEmptyCart            = "empty_cart"
	MsgOrderFailed          = "order_failed"
	MsgSubmissionInProgress = "submission_in_progress"
	MsgOutOfStock           = "out_of_stock"
	MsgProductNotFound      = "product_not_found"
	MsgOrderSuccessTitle    = "order_success_title"
	MsgOrderSuccessMessage  = "order_success_message"
	MsgOrderSuccessNoDetail = "order_success_no_detail"
	MsgInvalidDeliveryArea  = "invalid_delivery_area"
)

var messages = map[Lang]map[string]string{
	Bangla: {
		MsgRequiredFields:       "অনুগ্রহ করে সকল প্রয়োজনীয় তথ্য পূরণ করুন",
		MsgEmptyCart:            "আপনার কার্ট খালি",
		MsgOrderFailed:          "অর্ডার করতে সমস্যা হয়েছে। আবার চেষ্টা করুন।",
		MsgSubmissionInProgress: "আপনার অর্ডার প্রক্রিয়াধীন রয়েছে",
		MsgOutOfStock:           "স্টক শেষ",
		MsgProductNotFound:      "পণ্যটি পাওয়া যায়নি",
		MsgOrderSuccessTitle:    "অর্ডার সফল হয়েছে!",
		MsgOrderSuccessMessage:  "আপনার অর্ডারের জন্য ধন্যবাদ। শীঘ্রই আমরা আপনার সাথে যোগাযোগ করব।",
		MsgOrderSuccessNoDetail: "আপনার অর্ডার গ্রহণ করা হয়েছে।",
		MsgInvalidDeliveryArea:  "ডেলিভারি এলাকা নির্বাচন করুন",
	},
	English: {
		MsgRequiredFields:       "Please fill in all required fields",
		MsgEmptyCart:            "Your cart is empty",
		MsgOrderFailed:          "Failed to place the order. Please try again.",
		MsgSubmissionInProgress: "Your order is already being submitted",
		MsgOutOfStock:           "Out of stock",
		MsgProductNotFound:      "Product not found",
		MsgOrderSuccessTitle:    "Order placed successfully!",
		MsgOrderSuccessMessage:  "Thank you for your order. We will contact you shortly.",
		MsgOrderSuccessNoDetail: "Your order has been received.",
		MsgInvalidDeliveryArea:  "Please choose a delivery area",
	},
}
