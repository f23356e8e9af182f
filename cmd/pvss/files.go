package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// keysFile is the public setup shared by every participant.
type keysFile struct {
	Threshold    int               `json:"threshold"`
	Participants int               `json:"participants"`
	Variant      string            `json:"variant"`
	Auth         string            `json:"auth"`
	EncryptKeys  []string          `json:"encrypt_keys"`
	DealerKeys   map[uint32]string `json:"dealer_keys,omitempty"`
}

// participantFile holds one participant's secrets.
type participantFile struct {
	Index      int    `json:"index"`
	DecryptKey string `json:"decrypt_key"`
	EncryptKey string `json:"encrypt_key"`
	SigningKey string `json:"signing_key,omitempty"`
}

type transcriptFile struct {
	Threshold    int      `json:"threshold"`
	Participants int      `json:"participants"`
	Variant      string   `json:"variant"`
	Dealers      []uint32 `json:"dealers"`
	Transcript   string   `json:"transcript"`
}

type shareFile struct {
	Index int    `json:"index"`
	Share string `json:"share"`
}

type secretFile struct {
	SecretKey string `json:"secret_key"`
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o600)
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func decodeHex(s string) ([]byte, error) {
	if s == "" {
		return nil, errors.New("missing value")
	}
	return hex.DecodeString(s)
}
