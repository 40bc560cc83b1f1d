package encryption

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestEncryptDecrypt(t *testing.T) {
	save := []byte(`{"deck_type":"Base","player":{"money":4}}`)
	key := []byte("passphrasewhichneedstobe32bytes!")

	encrypted, err := Encrypt(save, key)
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Equal(encrypted, save) {
		t.Errorf("%s == %s", encrypted, save)
	}

	decrypted, err := Decrypt(encrypted, key)
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(decrypted, save) {
		t.Errorf("%s != %s", decrypted, save)
	}
}

func TestEncryptDecryptWithUUIDKey(t *testing.T) {
	save := []byte(`{"deck_type":"Red","round":3}`)
	key1 := uuid.MustParse("7faadaf6-ed32-47a9-a09a-01fd0daf9c3f")
	key2 := uuid.MustParse("b42ac4a3-8789-4f6e-98ca-2e829478e362")

	encrypted1, err := EncryptWithUUIDKey(save, key1)
	if err != nil {
		t.Fatal(err)
	}
	encrypted2, err := EncryptWithUUIDKey(save, key2)
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Equal(encrypted1, encrypted2) {
		t.Errorf("%s == %s", encrypted1, encrypted2)
	}

	decrypted1, err := DecryptWithUUIDKey(encrypted1, key1)
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(decrypted1, save) {
		t.Errorf("%s != %s", decrypted1, save)
	}

	// Decrypt with the other game's key. Should error.
	_, err = DecryptWithUUIDKey(encrypted1, key2)
	if err == nil {
		t.Error("expected an error decrypting with the wrong key")
	}
}

func TestSealOpenSave(t *testing.T) {
	save := []byte(`{"game_over":false}`)
	key := uuid.New()

	sealed, err := SealSave(save, key)
	if err != nil {
		t.Fatal(err)
	}
	if !IsSealed(sealed) {
		t.Error("sealed save is missing its header")
	}
	if IsSealed(save) {
		t.Error("plain save reported as sealed")
	}

	opened, err := OpenSave(sealed, key)
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(opened, save) {
		t.Errorf("%s != %s", opened, save)
	}

	if _, err := OpenSave(save, key); err != ErrNotSealed {
		t.Errorf("expected ErrNotSealed, got %v", err)
	}
	if _, err := OpenSave(sealed, uuid.New()); err == nil {
		t.Error("expected an error opening with the wrong key")
	}
	if _, err := Decrypt([]byte("short"), []byte("passphrasewhichneedstobe32bytes!")); err == nil {
		t.Error("expected an error for truncated ciphertext")
	}
}
