package qr

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// EmailText builds a mailto URI for email.
func EmailText(email string) string {
	return "mailto:" + email
}

// TelText builds a tel URI for phoneNumber.
func TelText(phoneNumber string) string {
	return "tel:" + phoneNumber
}

// SMSText builds an sms URI for phoneNumber.
func SMSText(phoneNumber string) string {
	return "sms:" + phoneNumber
}

// GeolocationText builds a geo URI for the given coordinates.
func GeolocationText(latitude, longitude, altitude float64) string {
	return fmt.Sprintf("geo:%g,%g,%g", latitude, longitude, altitude)
}

// GoogleMapsText builds a Google Maps search URL for the given coordinates.
func GoogleMapsText(latitude, longitude float64) string {
	return fmt.Sprintf("https://maps.google.com/local?q=%g,%g", latitude, longitude)
}

// YouTubeText builds a YouTube watch URL for videoID.
func YouTubeText(videoID string) string {
	return "https://www.youtube.com/watch/?v=" + url.QueryEscape(videoID)
}

// GooglePlayText builds a Google Play store URL for packageID.
func GooglePlayText(packageID string) string {
	return "https://play.google.com/store/apps/details?id=" + url.QueryEscape(packageID)
}

// Contact describes a phone book entry in terms of the MeCARD format.
// The Org field is not part of the standard but widely recognized.
type Contact struct {
	FirstName        string
	LastName         string
	FirstNameReading string
	LastNameReading  string
	Tel              string
	TelAV            string
	Email            string
	Memo             string
	Birthday         time.Time
	// Address fields divided by commas denote PO box, room number,
	// house number, city, prefecture, zip code and country, in order.
	Address  string
	URL      string
	Nickname string
	Org      string
}

// escapeMeCard escapes the characters with special meaning in MeCARD
// values: backslash, double quote, semicolon and comma.
func escapeMeCard(s string) string {
	for _, c := range []string{`\`, `"`, ";", ","} {
		s = strings.ReplaceAll(s, c, `\`+c)
	}
	return s
}

// ContactText builds a MeCARD payload for configuring a phone book entry.
func ContactText(c Contact) string {
	var b strings.Builder
	b.WriteString("MECARD:")

	writeField := func(field, value string) {
		if value != "" {
			b.WriteString(field + ":" + value + ";")
		}
	}

	firstName := escapeMeCard(c.FirstName)
	lastName := escapeMeCard(c.LastName)
	switch {
	case firstName != "" && lastName != "":
		writeField("N", lastName+","+firstName)
	case firstName != "":
		writeField("N", firstName)
	default:
		writeField("N", lastName)
	}

	firstReading := escapeMeCard(c.FirstNameReading)
	lastReading := escapeMeCard(c.LastNameReading)
	switch {
	case firstReading != "" && lastReading != "":
		writeField("SOUND", lastReading+","+firstReading)
	case firstReading != "":
		writeField("SOUND", firstReading)
	default:
		writeField("SOUND", lastReading)
	}

	writeField("TEL", escapeMeCard(c.Tel))
	writeField("TEL-AV", escapeMeCard(c.TelAV))
	writeField("EMAIL", escapeMeCard(c.Email))
	writeField("NOTE", escapeMeCard(c.Memo))
	if !c.Birthday.IsZero() {
		writeField("BDAY", c.Birthday.Format("20060102"))
	}
	writeField("ADR", c.Address)
	writeField("URL", c.URL)
	writeField("NICKNAME", escapeMeCard(c.Nickname))
	writeField("ORG", escapeMeCard(c.Org))

	b.WriteString(";")
	return b.String()
}

// WiFi describes a wireless network configuration.
type WiFi struct {
	SSID string
	// Authentication is WEP, WPA, or "nopass"/empty for an open network.
	Authentication string
	Password       string
	Hidden         bool
}

// WiFiText builds a WIFI payload for configuring a wireless connection.
// The syntax follows the MeCARD-inspired WIFI format.
func WiFiText(w WiFi) string {
	var b strings.Builder
	b.WriteString("WIFI:")
	if w.SSID != "" {
		b.WriteString("S:" + escapeMeCard(w.SSID) + ";")
	}
	if w.Authentication != "" {
		b.WriteString("T:" + w.Authentication + ";")
	}
	if w.Password != "" {
		b.WriteString("P:" + escapeMeCard(w.Password) + ";")
	}
	if w.Hidden {
		b.WriteString("H:true;")
	}
	return b.String()
}
