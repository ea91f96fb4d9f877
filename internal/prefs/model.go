package prefs

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Spok95/supply-console/internal/domain"
)

const (
	KeyProfile  = "profile_settings"
	KeySettings = "app_settings"
)

type Profile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

func DefaultProfile() Profile {
	return Profile{Name: "John Doe", Email: "john@example.com"}
}

func (p Profile) Validate() error {
	var v domain.ValidationErrors
	v.Required("name", p.Name)
	v.Required("email", p.Email)
	if p.Email != "" && !domain.ValidEmail(p.Email) {
		v.Add("email", "Please enter a valid email address.")
	}
	return v.Err()
}

// RandomAvatar: ссылка на сгенерированный аватар со случайным seed.
func RandomAvatar() string {
	seed := uuid.NewString()[:10]
	return fmt.Sprintf("https://api.dicebear.com/7.x/adventurer/svg?seed=%s", seed)
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

var Themes = []Theme{ThemeLight, ThemeDark, ThemeAuto}

var Colors = []string{"default", "green", "orange"}

type Settings struct {
	Theme              Theme  `json:"theme"`
	Color              string `json:"color"`
	EmailNotifications bool   `json:"emailNotifications"`
}

func DefaultSettings() Settings {
	return Settings{Theme: ThemeAuto, Color: "default", EmailNotifications: true}
}

func (s Settings) Validate() error {
	var v domain.ValidationErrors
	if !domain.OneOf(s.Theme, Themes...) {
		v.Add("theme", "unknown theme "+string(s.Theme))
	}
	if !domain.OneOf(s.Color, Colors...) {
		v.Add("color", "unknown color "+s.Color)
	}
	return v.Err()
}

// storedSettings: отсутствующие поля заменяются значениями по умолчанию,
// уведомления выключены только явным false.
type storedSettings struct {
	Theme              Theme  `json:"theme"`
	Color              string `json:"color"`
	EmailNotifications *bool  `json:"emailNotifications"`
}

func (s storedSettings) settings() Settings {
	out := DefaultSettings()
	if s.Theme != "" {
		out.Theme = s.Theme
	}
	if s.Color != "" {
		out.Color = s.Color
	}
	if s.EmailNotifications != nil {
		out.EmailNotifications = *s.EmailNotifications
	}
	return out
}
