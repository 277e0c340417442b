package identity

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAudienceMatches(t *testing.T) {
	cases := []struct {
		name string
		aud  any
		want bool
	}{
		{name: "string match", aud: "blood-center", want: true},
		{name: "string mismatch", aud: "other-project", want: false},
		{name: "any slice match", aud: []any{"x", "blood-center"}, want: true},
		{name: "any slice mismatch", aud: []any{"x", "y"}, want: false},
		{name: "string slice match", aud: []string{"blood-center"}, want: true},
		{name: "nil", aud: nil, want: false},
		{name: "number", aud: 42.0, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := audienceMatches(tc.aud, "blood-center"); got != tc.want {
				t.Fatalf("audienceMatches(%v) = %v, want %v", tc.aud, got, tc.want)
			}
		})
	}
}

func TestParseJWTRejectsMalformedTokens(t *testing.T) {
	for _, token := range []string{
		"",
		"onlyonepart",
		"two.parts",
		"a.b.c.d",
		"!!!.e30.c2ln",
	} {
		if _, _, _, _, err := parseJWT(token); err == nil {
			t.Errorf("parseJWT(%q) accepted a malformed token", token)
		}
	}
}

// issuerFixture serves an OIDC discovery document and a JWKS backed by a
// freshly generated RSA key, and signs tokens with that key.
type issuerFixture struct {
	srv *httptest.Server
	key *rsa.PrivateKey
	kid string
}

func newIssuerFixture(t *testing.T) *issuerFixture {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	f := &issuerFixture{key: key, kid: "test-key-1"}

	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"jwks_uri": f.srv.URL + "/jwks"})
	})
	mux.HandleFunc("/jwks", func(w http.ResponseWriter, r *http.Request) {
		pub := &key.PublicKey
		_ = json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]string{{
				"kid": f.kid,
				"kty": "RSA",
				"alg": "RS256",
				"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				"e":   "AQAB",
			}},
		})
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *issuerFixture) sign(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, _ := json.Marshal(map[string]string{"alg": "RS256", "typ": "JWT", "kid": f.kid})
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	signingInput := base64.RawURLEncoding.EncodeToString(header) + "." + base64.RawURLEncoding.EncodeToString(payload)
	hashed := sha256.Sum256([]byte(signingInput))
	sig, err := rsa.SignPKCS1v15(rand.Reader, f.key, crypto.SHA256, hashed[:])
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signingInput + "." + base64.RawURLEncoding.EncodeToString(sig)
}

func (f *issuerFixture) claims(overrides map[string]any) map[string]any {
	claims := map[string]any{
		"iss":   f.srv.URL,
		"aud":   "blood-center",
		"sub":   "uid-123",
		"email": "donor@example.com",
		"name":  "Donor One",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	for k, v := range overrides {
		claims[k] = v
	}
	return claims
}

func TestVerifyIDToken(t *testing.T) {
	f := newIssuerFixture(t)
	v := NewVerifier(f.srv.URL, "blood-center")

	got, err := v.VerifyIDToken(context.Background(), f.sign(t, f.claims(nil)))
	if err != nil {
		t.Fatalf("VerifyIDToken() error = %v", err)
	}
	if got.Email != "donor@example.com" || got.Subject != "uid-123" || got.Name != "Donor One" {
		t.Fatalf("claims = %+v", got)
	}
}

func TestVerifyIDTokenRejections(t *testing.T) {
	f := newIssuerFixture(t)
	v := NewVerifier(f.srv.URL, "blood-center")

	cases := []struct {
		name      string
		overrides map[string]any
	}{
		{name: "expired", overrides: map[string]any{"exp": time.Now().Add(-time.Minute).Unix()}},
		{name: "wrong audience", overrides: map[string]any{"aud": "other-project"}},
		{name: "wrong issuer", overrides: map[string]any{"iss": "https://attacker.example.com"}},
		{name: "missing email", overrides: map[string]any{"email": ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := v.VerifyIDToken(context.Background(), f.sign(t, f.claims(tc.overrides))); err == nil {
				t.Fatal("VerifyIDToken() accepted an invalid token")
			}
		})
	}
}

func TestVerifyIDTokenRejectsForgedSignature(t *testing.T) {
	f := newIssuerFixture(t)
	forger := newIssuerFixture(t)
	forger.kid = f.kid
	v := NewVerifier(f.srv.URL, "blood-center")

	token := forger.sign(t, f.claims(nil))
	if _, err := v.VerifyIDToken(context.Background(), token); err == nil {
		t.Fatal("VerifyIDToken() accepted a token signed by the wrong key")
	}
}
