package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/faisal/committee-tracker-go/i18n"
	"github.com/faisal/committee-tracker-go/services"
)

// ---------------- UNLOCK ----------------
// Unlock checks the PIN or password against the store and, on success, issues
// a session token and restarts the inactivity window.
func Unlock(lock *services.AutoLock, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Match(c.GetHeader("Accept-Language"))
		var input struct {
			Secret string `json:"secret" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ok, err := lock.Unlock(c.Request.Context(), input.Secret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not verify credentials"})
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": i18n.T(lang, "error.invalid_pin", nil)})
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "owner",
			"iat": time.Now().Unix(),
			"exp": time.Now().Add(24 * time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": signed})
	}
}

// ---------------- LOCK ----------------
func LockSession(lock *services.AutoLock) gin.HandlerFunc {
	return func(c *gin.Context) {
		lock.Lock()
		c.JSON(http.StatusOK, gin.H{"state": lock.State()})
	}
}

// ---------------- STATUS ----------------
func LockStatus(lock *services.AutoLock) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"state":     lock.State(),
			"countdown": lock.Countdown(),
		})
	}
}

// ---------------- CHANGE PIN ----------------
func ChangePIN(settings *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Match(c.GetHeader("Accept-Language"))
		var input struct {
			Current string `json:"current"`
			Next    string `json:"next" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ok, err := settings.ChangePIN(c.Request.Context(), input.Current, input.Next)
		if errors.Is(err, services.ErrPINFormat) {
			length := settings.Settings().PINLength
			c.JSON(http.StatusBadRequest, gin.H{
				"error": i18n.T(lang, "error.pin_length", map[string]string{
					"length": strconvLength(length),
				}),
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not change pin"})
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": i18n.T(lang, "error.invalid_pin", nil)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "pin updated"})
	}
}

// ---------------- CHANGE PASSWORD ----------------
func ChangePassword(settings *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Match(c.GetHeader("Accept-Language"))
		var input struct {
			Current string `json:"current"`
			Next    string `json:"next" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ok, err := settings.ChangePassword(c.Request.Context(), input.Current, input.Next)
		if errors.Is(err, services.ErrPINFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password too short"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not change password"})
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": i18n.T(lang, "error.invalid_pin", nil)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "password updated"})
	}
}

// ---------------- FORCE PIN (recovery) ----------------
// ForcePIN overwrites the PIN without the current one. Recovery flows only;
// failures surface loudly.
func ForcePIN(settings *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			PIN string `json:"pin" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := settings.ForceSetPIN(c.Request.Context(), input.PIN); err != nil {
			if errors.Is(err, services.ErrPINFormat) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pin format"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "pin reset"})
	}
}

// ---------------- SETTINGS ----------------
func GetSettings(settings *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"settings": settings.Settings(),
			"profile":  settings.Profile(),
		})
	}
}

func UpdateSettings(settings *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Language  string `json:"language"`
			Theme     string `json:"theme"`
			PINLength int    `json:"pin_length"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		if input.Language != "" {
			if err := settings.SetLanguage(ctx, input.Language); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update language"})
				return
			}
		}
		if input.Theme != "" {
			if err := settings.SetTheme(ctx, input.Theme); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update theme"})
				return
			}
		}
		if input.PINLength != 0 {
			if err := settings.SetPINLength(ctx, input.PINLength); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pin length"})
				return
			}
		}
		c.JSON(http.StatusOK, settings.Settings())
	}
}

func UpdateProfile(settings *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name  string `json:"name"`
			Phone string `json:"phone"`
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fields := map[string]any{}
		if input.Name != "" {
			fields["name"] = input.Name
		}
		if input.Phone != "" {
			fields["phone"] = input.Phone
		}
		if input.Email != "" {
			fields["email"] = input.Email
		}
		if len(fields) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}
		if err := settings.UpdateProfile(c.Request.Context(), fields); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
			return
		}
		c.JSON(http.StatusOK, settings.Profile())
	}
}
