// Package controllers contains the Gin handlers. They bind and validate
// input, call into services, and translate service errors into HTTP
// responses; no mutation rules live here.
package controllers

import "fmt"

func strconvAmount(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

func strconvLength(n int) string {
	return fmt.Sprintf("%d", n)
}
