package services

import (
	"blog-backend/internal/metrics"
)

const (
	resultSuccess  = "success"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

func recordRegistration(result string) {
	metrics.RegistrationsTotal.WithLabelValues(result).Inc()
}

func recordLogin(result string) {
	metrics.LoginsTotal.WithLabelValues(result).Inc()
}

func recordSession(result string) {
	metrics.SessionsResolvedTotal.WithLabelValues(result).Inc()
}

func recordBlogMutation(action, result string) {
	metrics.BlogMutationsTotal.WithLabelValues(action, result).Inc()
}

func recordPresignedUpload() {
	metrics.ImageUploadsPresigned.Inc()
}

func setFeedSubscribers(n int) {
	metrics.FeedSubscribers.Set(float64(n))
}
