package qr

import (
	"testing"
	"time"
)

func TestSimplePayloads(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"email", EmailText("john.doe@domain.com"), "mailto:john.doe@domain.com"},
		{"tel", TelText("+41769998877"), "tel:+41769998877"},
		{"sms", SMSText("+41769998877"), "sms:+41769998877"},
		{"geolocation", GeolocationText(586.8, 250.9, 500), "geo:586.8,250.9,500"},
		{"google maps", GoogleMapsText(586.8, 250.9), "https://maps.google.com/local?q=586.8,250.9"},
		{"youtube", YouTubeText("J9go2nj6b3M"), "https://www.youtube.com/watch/?v=J9go2nj6b3M"},
		{"google play", GooglePlayText("ch.admin.meteoswiss"), "https://play.google.com/store/apps/details?id=ch.admin.meteoswiss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestContactText(t *testing.T) {
	contact := Contact{
		FirstName: "John",
		LastName:  "Doe",
		Tel:       "+41769998877",
		Email:     "j.doe@company.com",
		Birthday:  time.Date(1985, 10, 2, 0, 0, 0, 0, time.UTC),
		URL:       "http://www.company.com",
		Org:       "Company Ltd",
	}

	want := "MECARD:N:Doe,John;TEL:+41769998877;EMAIL:j.doe@company.com;" +
		"BDAY:19851002;URL:http://www.company.com;ORG:Company Ltd;;"
	if got := ContactText(contact); got != want {
		t.Errorf("ContactText = %q, want %q", got, want)
	}
}

func TestContactText_Escaping(t *testing.T) {
	got := ContactText(Contact{FirstName: `Jo;hn`, LastName: `D,oe`})
	want := `MECARD:N:D\,oe,Jo\;hn;;`
	if got != want {
		t.Errorf("ContactText = %q, want %q", got, want)
	}
}

func TestContactText_SingleName(t *testing.T) {
	if got := ContactText(Contact{FirstName: "John"}); got != "MECARD:N:John;;" {
		t.Errorf("ContactText = %q", got)
	}
	if got := ContactText(Contact{LastName: "Doe"}); got != "MECARD:N:Doe;;" {
		t.Errorf("ContactText = %q", got)
	}
}

func TestWiFiText(t *testing.T) {
	tests := []struct {
		name string
		wifi WiFi
		want string
	}{
		{
			name: "wpa network",
			wifi: WiFi{SSID: "my-wifi", Authentication: "WPA", Password: "secret"},
			want: "WIFI:S:my-wifi;T:WPA;P:secret;",
		},
		{
			name: "hidden network",
			wifi: WiFi{SSID: "hidden-net", Authentication: "WEP", Password: "pw", Hidden: true},
			want: "WIFI:S:hidden-net;T:WEP;P:pw;H:true;",
		},
		{
			name: "escaped ssid",
			wifi: WiFi{SSID: `semi;colon`},
			want: `WIFI:S:semi\;colon;`,
		},
		{
			name: "open network",
			wifi: WiFi{SSID: "cafe"},
			want: "WIFI:S:cafe;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WiFiText(tt.wifi); got != tt.want {
				t.Errorf("WiFiText = %q, want %q", got, tt.want)
			}
		})
	}
}
