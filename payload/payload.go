// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package payload builds the text of common QR code contents: links,
// e-mail messages, locations, phone numbers and Wi-Fi credentials.
package payload

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

var (
	ErrEmpty      = errors.New("payload: required field is empty")
	ErrCoordinate = errors.New("payload: coordinate out of range")
	ErrPhone      = errors.New("payload: invalid phone number")
	ErrSecurity   = errors.New("payload: unknown Wi-Fi security")
)

// A FieldError names a required field that is empty.
type FieldError string

func (e FieldError) Error() string { return "payload: empty " + string(e) }

func (e FieldError) Is(target error) bool { return target == ErrEmpty }

// A Payload is the content of a QR code.
type Payload interface {
	Payload() (string, error)
}

// Text is free text, encoded as is.
type Text string

func (t Text) Payload() (string, error) {
	if t == "" {
		return "", FieldError("text")
	}
	return string(t), nil
}

// URL is a link.  Spaces are escaped, and https:// is prepended if
// there is no scheme.
type URL string

func (u URL) Payload() (string, error) {
	s := strings.TrimSpace(string(u))
	if s == "" {
		return "", FieldError("url")
	}
	s = strings.ReplaceAll(s, " ", "%20")
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	return s, nil
}

// An Email is a mailto link with optional subject and body.
type Email struct {
	To      string
	Subject string
	Body    string
}

func (e Email) Payload() (string, error) {
	if e.To == "" {
		return "", FieldError("recipient")
	}
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(e.To)
	sep := byte('?')
	for _, f := range [...]struct{ k, v string }{
		{"subject", e.Subject},
		{"body", e.Body},
	} {
		if f.v == "" {
			continue
		}
		b.WriteByte(sep)
		b.WriteString(f.k)
		b.WriteByte('=')
		b.WriteString(escape(f.v))
		sep = '&'
	}
	return b.String(), nil
}

// escape percent-encodes s for a mailto query.  Spaces become %20,
// as mail clients do not decode + in mailto links.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// A Geo is a location in decimal degrees.
type Geo struct {
	Latitude  float64
	Longitude float64
}

func (g Geo) Payload() (string, error) {
	if !(-90 <= g.Latitude && g.Latitude <= 90) ||
		!(-180 <= g.Longitude && g.Longitude <= 180) {
		return "", ErrCoordinate
	}
	return "geo:" + strconv.FormatFloat(g.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(g.Longitude, 'f', -1, 64), nil
}

// ParseGeo parses a latitude and longitude.
func ParseGeo(lat, lon string) (Geo, error) {
	if lat == "" {
		return Geo{}, FieldError("latitude")
	}
	if lon == "" {
		return Geo{}, FieldError("longitude")
	}
	var (
		g   Geo
		err error
	)
	if g.Latitude, err = strconv.ParseFloat(lat, 64); err != nil {
		return Geo{}, ErrCoordinate
	}
	if g.Longitude, err = strconv.ParseFloat(lon, 64); err != nil {
		return Geo{}, ErrCoordinate
	}
	return g, nil
}

// Phone is a telephone number: digits with an optional leading +.
// Spaces, dashes and parentheses are removed.
type Phone string

func (p Phone) Payload() (string, error) {
	if p == "" {
		return "", FieldError("phone number")
	}
	s := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, string(p))
	digits := strings.TrimPrefix(s, "+")
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return "", ErrPhone
	}
	return "tel:" + s, nil
}

// Security is a Wi-Fi authentication type.
type Security string

const (
	NoPass  Security = "nopass"
	WEP     Security = "WEP"
	WPA     Security = "WPA"
	WPA2EAP Security = "WPA2-EAP"
)

// ParseSecurity parses a Wi-Fi authentication type, ignoring case.
// The empty string and "none" mean NoPass.
func ParseSecurity(s string) (Security, error) {
	switch strings.ToLower(s) {
	case "", "none", "nopass":
		return NoPass, nil
	case "wep":
		return WEP, nil
	case "wpa", "wpa2":
		return WPA, nil
	case "wpa2-eap", "eap":
		return WPA2EAP, nil
	}
	return "", ErrSecurity
}

// WiFi holds network credentials.
type WiFi struct {
	SSID     string
	Password string
	Security Security
	Hidden   bool
}

var wifiEscaper = strings.NewReplacer(
	`\`, `\\`, `;`, `\;`, `,`, `\,`, `:`, `\:`, `"`, `\"`)

func (w WiFi) Payload() (string, error) {
	sec := w.Security
	if sec == "" {
		sec = NoPass
	}
	switch {
	case w.SSID == "":
		return "", FieldError("network name")
	case sec != NoPass && w.Password == "":
		return "", FieldError("password")
	}
	var b strings.Builder
	b.WriteString("WIFI:T:" + string(sec) + ";S:" + wifiEscaper.Replace(w.SSID) + ";")
	if sec != NoPass {
		b.WriteString("P:" + wifiEscaper.Replace(w.Password) + ";")
	}
	if w.Hidden {
		b.WriteString("H:true;")
	}
	b.WriteByte(';')
	return b.String(), nil
}

// Kinds lists the payload kinds accepted by New.
var Kinds = []string{"text", "url", "email", "geo", "tel", "wifi"}

// New returns the payload of the given kind built from fields:
//
//	text, url: the text
//	email:     recipient [subject [body]]
//	geo:       latitude longitude
//	tel:       number
//	wifi:      ssid [password [security]]
//
// Missing fields are empty.
func New(kind string, fields ...string) (Payload, error) {
	f := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	switch kind {
	case "text", "":
		return Text(f(0)), nil
	case "url":
		return URL(f(0)), nil
	case "email":
		return Email{To: f(0), Subject: f(1), Body: f(2)}, nil
	case "geo":
		return ParseGeo(f(0), f(1))
	case "tel":
		return Phone(f(0)), nil
	case "wifi":
		sec := f(2)
		if sec == "" && f(1) != "" {
			sec = string(WPA)
		}
		s, err := ParseSecurity(sec)
		if err != nil {
			return nil, err
		}
		return WiFi{SSID: f(0), Password: f(1), Security: s}, nil
	}
	return nil, errors.New("payload: unknown kind " + strconv.Quote(kind))
}
