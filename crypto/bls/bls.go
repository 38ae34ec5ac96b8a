// Package bls wraps the kyber BLS implementation on the bn256 pairing
// suite into the signature service used by consensus: individual signing
// and verification of vote messages, plus aggregation of a quorum of
// signatures over the same message into one certificate signature.
package bls

import (
	"crypto/cipher"
	"fmt"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/pairing/bn256"
	"go.dedis.ch/kyber/v3/sign/bls"
	"go.dedis.ch/kyber/v3/util/random"
	"go.dedis.ch/kyber/v3/xof/blake2xb"
)

var suite = bn256.NewSuite()

// PrivateKey is a BLS private key.
type PrivateKey struct {
	scalar kyber.Scalar
	public kyber.Point
}

// GenerateKey generates a new private key from the given seed. The same
// seed always yields the same key; a nil seed uses a cryptographically
// secure random source.
func GenerateKey(seed []byte) (*PrivateKey, error) {
	var stream cipher.Stream
	if seed == nil {
		stream = random.New()
	} else {
		stream = blake2xb.New(seed)
	}
	scalar, public := bls.NewKeyPair(suite, stream)
	return &PrivateKey{scalar: scalar, public: public}, nil
}

// Sign signs the given message.
func (sk *PrivateKey) Sign(msg []byte) ([]byte, error) {
	sig, err := bls.Sign(suite, sk.scalar, msg)
	if err != nil {
		return nil, fmt.Errorf("could not sign message: %w", err)
	}
	return sig, nil
}

// PublicKey returns the serialized public key for the private key.
func (sk *PrivateKey) PublicKey() ([]byte, error) {
	data, err := sk.public.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("could not encode public key: %w", err)
	}
	return data, nil
}

// Encode returns the binary encoding of the private key.
func (sk *PrivateKey) Encode() ([]byte, error) {
	data, err := sk.scalar.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("could not encode private key: %w", err)
	}
	return data, nil
}

// DecodePrivateKey reconstructs a private key from its binary encoding.
func DecodePrivateKey(data []byte) (*PrivateKey, error) {
	scalar := suite.G2().Scalar()
	err := scalar.UnmarshalBinary(data)
	if err != nil {
		return nil, fmt.Errorf("could not decode private key: %w", err)
	}
	public := suite.G2().Point().Mul(scalar, nil)
	return &PrivateKey{scalar: scalar, public: public}, nil
}

// Verify checks the signature of the message against the serialized public
// key. A nil return value means the signature is valid.
func Verify(pubKey []byte, msg []byte, sig []byte) error {
	point, err := decodePublicKey(pubKey)
	if err != nil {
		return err
	}
	return bls.Verify(suite, point, msg, sig)
}

// AggregateSignatures combines the given signatures over the same message
// into a single aggregated signature.
func AggregateSignatures(sigs ...[]byte) ([]byte, error) {
	if len(sigs) == 0 {
		return nil, fmt.Errorf("cannot aggregate empty signature set")
	}
	agg, err := bls.AggregateSignatures(suite, sigs...)
	if err != nil {
		return nil, fmt.Errorf("could not aggregate signatures: %w", err)
	}
	return agg, nil
}

// VerifyAggregate checks an aggregated signature of the given message
// against the aggregate of the provided public keys. All signers must have
// signed the identical message.
func VerifyAggregate(pubKeys [][]byte, msg []byte, sig []byte) error {
	if len(pubKeys) == 0 {
		return fmt.Errorf("cannot verify aggregate against empty key set")
	}
	points := make([]kyber.Point, 0, len(pubKeys))
	for _, pubKey := range pubKeys {
		point, err := decodePublicKey(pubKey)
		if err != nil {
			return err
		}
		points = append(points, point)
	}
	aggKey := bls.AggregatePublicKeys(suite, points...)
	return bls.Verify(suite, aggKey, msg, sig)
}

func decodePublicKey(pubKey []byte) (kyber.Point, error) {
	point := suite.G2().Point()
	err := point.UnmarshalBinary(pubKey)
	if err != nil {
		return nil, fmt.Errorf("could not decode public key: %w", err)
	}
	return point, nil
}
