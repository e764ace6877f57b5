package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/wakaf-tunai/internal/constants"

	"github.com/gin-gonic/gin"
)

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		url    string
		header string
		want   string
	}{
		{"/x", "", constants.LocaleID},
		{"/x?lang=en", "", constants.LocaleEN},
		{"/x", "en-GB,en;q=0.9", constants.LocaleEN},
		{"/x", "fr-FR, id;q=0.8", constants.LocaleID},
		{"/x?lang=zz", "en", constants.LocaleEN},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", tc.url, nil)
		if tc.header != "" {
			c.Request.Header.Set("Accept-Language", tc.header)
		}
		if got := ResolveLocale(c); got != tc.want {
			t.Fatalf("%s %q: want %s got %s", tc.url, tc.header, tc.want, got)
		}
	}
}

func TestTFallback(t *testing.T) {
	if got := T(constants.LocaleEN, "error.self_delete"); got != "Cannot delete your own account" {
		t.Fatalf("unexpected en message: %s", got)
	}
	if got := T("xx-XX", "donation.confirmed"); got != "Wakaf berhasil dikonfirmasi!" {
		t.Fatalf("unexpected fallback message: %s", got)
	}
	if got := T(constants.LocaleID, "missing.key"); got != "missing.key" {
		t.Fatalf("missing key should echo, got %s", got)
	}
	if got := Sprintf(constants.LocaleEN, "error.proof_too_large", 5); got != "Proof of transfer exceeds 5 MB" {
		t.Fatalf("unexpected formatted message: %s", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range messagesID {
		if _, ok := messagesEN[key]; !ok {
			t.Fatalf("en catalog missing key %s", key)
		}
	}
	for key := range messagesEN {
		if _, ok := messagesID[key]; !ok {
			t.Fatalf("id catalog missing key %s", key)
		}
	}
}
