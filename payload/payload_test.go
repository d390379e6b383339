// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package payload

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload(t *testing.T) {
	for _, tt := range []struct {
		p    Payload
		want string
	}{
		{Text("hello, world"), "hello, world"},
		{URL("example.com/a b"), "https://example.com/a%20b"},
		{URL("  http://example.com "), "http://example.com"},
		{Email{To: "a@example.com"}, "mailto:a@example.com"},
		{Email{"a@example.com", "Hi there", "x&y=z?"},
			"mailto:a@example.com?subject=Hi%20there&body=x%26y%3Dz%3F"},
		{Email{To: "a@example.com", Body: "1+1"},
			"mailto:a@example.com?body=1%2B1"},
		{Geo{52.5163, 13.3777}, "geo:52.5163,13.3777"},
		{Geo{-33.8568, 151.2153}, "geo:-33.8568,151.2153"},
		{Geo{}, "geo:0,0"},
		{Phone("+1 (555) 010-0199"), "tel:+15550100199"},
		{Phone("112"), "tel:112"},
		{WiFi{SSID: "guest"}, "WIFI:T:nopass;S:guest;;"},
		{WiFi{SSID: `my;net`, Password: `p"a:s,s\`, Security: WPA},
			`WIFI:T:WPA;S:my\;net;P:p\"a\:s\,s\\;;`},
		{WiFi{SSID: "x", Password: "y", Security: WEP, Hidden: true},
			"WIFI:T:WEP;S:x;P:y;H:true;;"},
	} {
		got, err := tt.p.Payload()
		require.NoError(t, err, "%#v", tt.p)
		assert.Equal(t, tt.want, got)
	}
}

func TestPayloadErrors(t *testing.T) {
	for _, tt := range []struct {
		p   Payload
		err error
	}{
		{Text(""), ErrEmpty},
		{URL(" "), ErrEmpty},
		{Email{Subject: "x"}, ErrEmpty},
		{Geo{91, 0}, ErrCoordinate},
		{Geo{0, -180.5}, ErrCoordinate},
		{Phone(""), ErrEmpty},
		{Phone("+"), ErrPhone},
		{Phone("1+2"), ErrPhone},
		{Phone("555-CALL"), ErrPhone},
		{WiFi{}, ErrEmpty},
		{WiFi{SSID: "x", Security: WPA}, ErrEmpty},
	} {
		_, err := tt.p.Payload()
		assert.True(t, errors.Is(err, tt.err), "%#v: %v", tt.p, err)
	}
	_, err := WiFi{SSID: "x", Security: WPA}.Payload()
	assert.EqualError(t, err, "payload: empty password")
}

func TestNew(t *testing.T) {
	for _, tt := range []struct {
		kind   string
		fields []string
		want   string
	}{
		{"text", []string{"abc"}, "abc"},
		{"url", []string{"example.com"}, "https://example.com"},
		{"email", []string{"a@b.c", "s"}, "mailto:a@b.c?subject=s"},
		{"geo", []string{"1.5", "-2"}, "geo:1.5,-2"},
		{"tel", []string{"+4930"}, "tel:+4930"},
		{"wifi", []string{"net"}, "WIFI:T:nopass;S:net;;"},
		{"wifi", []string{"net", "pw"}, "WIFI:T:WPA;S:net;P:pw;;"},
		{"wifi", []string{"net", "pw", "wep"}, "WIFI:T:WEP;S:net;P:pw;;"},
	} {
		p, err := New(tt.kind, tt.fields...)
		require.NoError(t, err)
		got, err := p.Payload()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := New("geo", "north", "1")
	assert.Equal(t, ErrCoordinate, err)
	_, err = New("geo", "1")
	assert.Equal(t, FieldError("longitude"), err)
	_, err = New("wifi", "net", "pw", "wpa3")
	assert.Equal(t, ErrSecurity, err)
	_, err = New("vcard")
	assert.EqualError(t, err, `payload: unknown kind "vcard"`)
}

func ExampleWiFi() {
	s, err := WiFi{SSID: "Café; 2nd floor", Password: "s3cret", Security: WPA}.Payload()
	if err != nil {
		panic(err)
	}
	fmt.Println(s)
	// Output: WIFI:T:WPA;S:Café\; 2nd floor;P:s3cret;;
}

func ExampleEmail() {
	s, _ := Email{"info@example.com", "Order #42", "Hello!"}.Payload()
	fmt.Println(s)
	// Output: mailto:info@example.com?subject=Order%20%2342&body=Hello%21
}
