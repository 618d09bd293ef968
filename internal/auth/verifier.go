// Package auth holds the admin gate. It is a placeholder credential check for
// the demo dashboard, not a security boundary.
package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultIdentity = "admin"
	DefaultPasskey  = "luxury2024"

	RejectionMessage = "Invalid credentials. Access denied."
)

type Verifier interface {
	Verify(identity, secret string) bool
}

// StaticVerifier accepts exactly one literal identity/secret pair.
type StaticVerifier struct {
	Identity string
	Secret   string
}

func (v StaticVerifier) Verify(identity, secret string) bool {
	idOK := subtle.ConstantTimeCompare([]byte(identity), []byte(v.Identity)) == 1
	secretOK := subtle.ConstantTimeCompare([]byte(secret), []byte(v.Secret)) == 1
	return idOK && secretOK
}

// BcryptVerifier compares the secret against a bcrypt hash of the passkey.
type BcryptVerifier struct {
	Identity string
	Hash     []byte
}

func (v BcryptVerifier) Verify(identity, secret string) bool {
	if subtle.ConstantTimeCompare([]byte(identity), []byte(v.Identity)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.Hash, []byte(secret)) == nil
}

// NewVerifier picks the bcrypt verifier when a hash is configured.
func NewVerifier(identity, passkey, passkeyHash string) Verifier {
	if passkeyHash != "" {
		return BcryptVerifier{Identity: identity, Hash: []byte(passkeyHash)}
	}
	return StaticVerifier{Identity: identity, Secret: passkey}
}

type Gate struct {
	verifier Verifier
}

func NewGate(v Verifier) *Gate {
	return &Gate{verifier: v}
}

func (g *Gate) Authenticate(identity, secret string) bool {
	return g.verifier.Verify(identity, secret)
}
