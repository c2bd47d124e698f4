package i18n

// Message catalogs. Keys shared across languages; English is the fallback.
var catalogs = map[string]map[string]string{
	"en": {
		"committee.created":        "Committee \"{title}\" was created",
		"committee.updated":        "Committee \"{title}\" was updated",
		"committee.deleted":        "Committee \"{title}\" was deleted",
		"committee.member_added":   "{name} joined \"{title}\"",
		"committee.member_removed": "{name} left \"{title}\"",
		"payment.received":         "{name} paid {amount} into \"{title}\"",
		"payment.overdue":          "{name} has an overdue payment of {amount} in \"{title}\"",
		"payment.reminder":         "Reminder: your payment of {amount} for \"{title}\" is due",
		"payout.upcoming":          "{name} is due a payout from \"{title}\" soon",
		"payout.paid":              "{name} received the payout for period {period} of \"{title}\"",
		"installment.payment":      "Installment payment received from {name}",
		"installment.closed":       "Installment for {name} is fully paid",
		"error.invalid_pin":        "The PIN you entered is incorrect",
		"error.pin_length":         "PIN must be exactly {length} digits",
		"error.pin_digits":         "PIN may only contain digits",
		"error.locked":             "The session is locked, unlock to continue",
		"error.member_in_use":      "{name} still belongs to a committee and cannot be deleted",
		"error.backup_invalid":     "The backup file is missing required data",
	},
	"ur": {
		"committee.created":        "کمیٹی \"{title}\" بنائی گئی",
		"committee.updated":        "کمیٹی \"{title}\" میں تبدیلی کی گئی",
		"committee.deleted":        "کمیٹی \"{title}\" حذف کی گئی",
		"committee.member_added":   "{name} نے \"{title}\" میں شمولیت اختیار کی",
		"committee.member_removed": "{name} نے \"{title}\" چھوڑ دی",
		"payment.received":         "{name} نے \"{title}\" میں {amount} ادا کیے",
		"payment.overdue":          "{name} کی \"{title}\" میں {amount} کی ادائیگی باقی ہے",
		"payment.reminder":         "یاد دہانی: \"{title}\" کے لیے آپ کی {amount} کی ادائیگی واجب ہے",
		"payout.upcoming":          "{name} کو جلد \"{title}\" سے کمیٹی ملنے والی ہے",
		"payout.paid":              "{name} کو \"{title}\" کی مدت {period} کی کمیٹی مل گئی",
		"installment.payment":      "{name} کی قسط موصول ہوئی",
		"installment.closed":       "{name} کی قسطیں مکمل ہو گئیں",
		"error.invalid_pin":        "درج کردہ PIN غلط ہے",
		"error.pin_length":         "PIN بالکل {length} ہندسوں کا ہونا چاہیے",
		"error.pin_digits":         "PIN میں صرف ہندسے ہو سکتے ہیں",
		"error.locked":             "سیشن مقفل ہے، جاری رکھنے کے لیے کھولیں",
		"error.member_in_use":      "{name} ابھی کسی کمیٹی میں شامل ہے اور حذف نہیں ہو سکتا",
		"error.backup_invalid":     "بیک اپ فائل میں مطلوبہ ڈیٹا موجود نہیں",
	},
}
