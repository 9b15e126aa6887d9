// Package signing authenticates messages with an HMAC signed JWT carried
// in the Signature property. The token binds the body digest and the
// routing properties, so neither can be changed in transit.
package signing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/matchsync/internal/crypto"
	"github.com/iudanet/matchsync/internal/transport"
)

// SignatureProperty is the message property holding the token
const SignatureProperty = "Signature"

// Issuer is written to every token
const Issuer = "matchsync"

// Signing errors
var (
	// ErrEmptySecret indicates that no secret was configured
	ErrEmptySecret = errors.New("signing secret cannot be empty")

	// ErrInvalidSignature indicates a missing, malformed or mismatching signature
	ErrInvalidSignature = errors.New("invalid message signature")
)

// Claims представляет JWT claims подписи сообщения
type Claims struct {
	Properties map[string]string `json:"props,omitempty"`
	BodyHash   string            `json:"body_sha256"`
	jwt.RegisteredClaims
}

// Config содержит конфигурацию подписи
type Config struct {
	Secret []byte
	TTL    time.Duration // TTL 0 - без срока действия
}

// Signer signs and verifies messages
type Signer struct {
	cfg Config
}

// NewSigner creates a Signer
func NewSigner(cfg Config) (*Signer, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrEmptySecret
	}
	return &Signer{cfg: cfg}, nil
}

// Sign returns a token for body and properties (without the Signature property itself)
func (s *Signer) Sign(body []byte, properties map[string]string) (string, error) {
	now := time.Now()
	claims := Claims{
		BodyHash:   crypto.HashBody(body),
		Properties: unsigned(properties),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   Issuer,
		},
	}
	if s.cfg.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.cfg.TTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}
	return signed, nil
}

// Verify checks the Signature property of a message
func (s *Signer) Verify(body []byte, properties map[string]string) error {
	tokenString := properties[SignatureProperty]
	if tokenString == "" {
		return fmt.Errorf("%w: missing %s property", ErrInvalidSignature, SignatureProperty)
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.cfg.Secret, nil
	}, jwt.WithIssuer(Issuer))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return ErrInvalidSignature
	}
	if !crypto.VerifyBodyHash(body, claims.BodyHash) {
		return fmt.Errorf("%w: body does not match", ErrInvalidSignature)
	}
	if !maps.Equal(claims.Properties, unsigned(properties)) {
		return fmt.Errorf("%w: properties do not match", ErrInvalidSignature)
	}
	return nil
}

// unsigned returns properties without the signature; nil when empty
func unsigned(properties map[string]string) map[string]string {
	out := make(map[string]string, len(properties))
	for k, v := range properties {
		if k != SignatureProperty {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type signingSender struct {
	next   transport.Sender
	signer *Signer
}

// Sender signs every message sent through next
func (s *Signer) Sender(next transport.Sender) transport.Sender {
	return &signingSender{next: next, signer: s}
}

func (s *signingSender) Send(ctx context.Context, body []byte, properties map[string]string) error {
	token, err := s.signer.Sign(body, properties)
	if err != nil {
		return err
	}
	signed := maps.Clone(properties)
	if signed == nil {
		signed = make(map[string]string, 1)
	}
	signed[SignatureProperty] = token
	return s.next.Send(ctx, body, signed)
}

type verifyingReceiver struct {
	transport.Receiver
	signer *Signer
	logger *slog.Logger
}

// Receiver dead-letters messages from next whose signature does not verify
func (s *Signer) Receiver(next transport.Receiver, logger *slog.Logger) transport.Receiver {
	return &verifyingReceiver{Receiver: next, signer: s, logger: logger}
}

func (r *verifyingReceiver) Receive(ctx context.Context, wait time.Duration) (*transport.Message, error) {
	deadline := time.Now().Add(wait)
	for {
		msg, err := r.Receiver.Receive(ctx, time.Until(deadline))
		if err != nil || msg == nil {
			return msg, err
		}
		err = r.signer.Verify(msg.Body, msg.Properties)
		if err == nil {
			return msg, nil
		}

		r.logger.Warn("Rejected message with invalid signature",
			"message_id", msg.ID,
			slog.Any("error", err),
		)
		if err := r.Receiver.DeadLetter(ctx, msg, "InvalidSignature"); err != nil {
			return nil, fmt.Errorf("failed to dead-letter unsigned message %s: %w", msg.ID, err)
		}
		if !time.Now().Before(deadline) {
			return nil, nil
		}
	}
}
