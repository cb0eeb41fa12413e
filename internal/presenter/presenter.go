// Package presenter maps a verification outcome onto the copy shown on
// the payment callback page.
package presenter

import "github.com/arkade-01/arkID/internal/models"

type StatusInfo struct {
	Title            string `json:"title"`
	Message          string `json:"message"`
	Icon             string `json:"icon"`
	ShowEmailMessage bool   `json:"showEmailMessage"`
	ShowRefresh      bool   `json:"showRefresh"`
}

// Describe resolves the callback presentation. An explicit URL status of
// success, failed or error always wins over the live verification state:
// the backend redirect may already carry a definitive outcome.
func Describe(urlStatus, urlMessage string, state models.VerificationState) StatusInfo {
	switch urlStatus {
	case "success":
		return successInfo()
	case "failed":
		return failedInfo()
	case "error":
		return errorInfo(urlMessage)
	}

	switch state {
	case models.VerificationCompleted:
		return successInfo()
	case models.VerificationPending:
		return StatusInfo{
			Title:       "Payment Pending",
			Message:     "Your payment is still being processed. Check again in a moment.",
			Icon:        "⏳",
			ShowRefresh: true,
		}
	case models.VerificationFailed:
		return failedInfo()
	case models.VerificationError:
		return StatusInfo{
			Title:   "Verification Error",
			Message: "We could not verify your payment. Please contact support with your order reference.",
			Icon:    "⚠️",
		}
	default:
		return StatusInfo{
			Title:   "Verifying Payment...",
			Message: "Please wait while we verify your payment status.",
			Icon:    "⏳",
		}
	}
}

func successInfo() StatusInfo {
	return StatusInfo{
		Title:            "Payment Successful!",
		Message:          "Your order has been confirmed and payment processed successfully.",
		Icon:             "✅",
		ShowEmailMessage: true,
	}
}

func failedInfo() StatusInfo {
	return StatusInfo{
		Title:   "Payment Failed",
		Message: "There was an issue processing your payment. Please try again.",
		Icon:    "❌",
	}
}

func errorInfo(urlMessage string) StatusInfo {
	msg := urlMessage
	if msg == "" {
		msg = "An unexpected error occurred while processing your payment."
	}
	return StatusInfo{
		Title:   "Payment Error",
		Message: msg,
		Icon:    "⚠️",
	}
}
