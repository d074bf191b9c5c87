package protocol

import (
	"errors"
	"testing"
)

func TestErrorMessageKnownCodes(t *testing.T) {
	cases := map[string]string{
		"ERROR_GENERIC":               "Generic error.",
		"ERROR_TYPE":                  "Malformed request: the message type is incorrect.",
		"TOO_MANY_CLIENTS":            "Too many clients connected to the server.",
		"IMAGE_DATA_TOO_BIG":          "Image data size too big.",
		"IMAGE_NOT_INDEXED":           "Image not indexed.",
		"IMAGE_NOT_DECODED":           "The query image could not be decoded.",
		"IMAGE_SIZE_TOO_SMALL":        "Image size too small.",
		"IMAGE_NOT_FOUND":             "Image not found.",
		"IMAGE_TAG_NOT_FOUND":         "Image tag not found.",
		"INDEX_NOT_FOUND":             "Index not found.",
		"INDEX_TAGS_NOT_FOUND":        "Index tags not found.",
		"INDEX_NOT_WRITTEN":           "Index not written.",
		"INDEX_TAGS_NOT_WRITTEN":      "Index tags not written.",
		"IMAGE_DOWNLOADER_HTTP_ERROR": "An HTTP error occurred when downloading the image.",
	}
	for code, want := range cases {
		if got := ErrorMessage(code); got != want {
			t.Errorf("ErrorMessage(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestErrorMessageUnknownCode(t *testing.T) {
	got := ErrorMessage("SOMETHING_NEW")
	want := "Undefined error (SOMETHING_NEW)"
	if got != want {
		t.Fatalf("ErrorMessage = %q, want %q", got, want)
	}
}

func TestErrorMessageEmptyCode(t *testing.T) {
	got := ErrorMessage("")
	want := "Undefined error ((null))"
	if got != want {
		t.Fatalf("ErrorMessage = %q, want %q", got, want)
	}
}

func TestVerifyMatchingTypes(t *testing.T) {
	types := []string{
		TypePong, TypeImageAdded, TypeImageRemoved, TypeImageTagAdded,
		TypeImageTagRemoved, TypeIndexLoaded, TypeIndexWritten,
		TypeIndexTagsLoaded, TypeIndexTagsWritten, TypeIndexCleared,
		TypeIndexImageIDs, TypeSearchResults,
	}
	for _, typ := range types {
		if err := Verify(typ, Envelope{Type: typ}); err != nil {
			t.Errorf("Verify(%q, %q) = %v, want nil", typ, typ, err)
		}
	}
}

func TestVerifyMismatchUsesActualType(t *testing.T) {
	err := Verify(TypePong, Envelope{Type: "IMAGE_NOT_FOUND"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %T", err)
	}
	if domainErr.Code != "IMAGE_NOT_FOUND" {
		t.Fatalf("unexpected code: %s", domainErr.Code)
	}
	if domainErr.Message != "Image not found." {
		t.Fatalf("unexpected message: %s", domainErr.Message)
	}
}

func TestVerifyMismatchUnknownType(t *testing.T) {
	err := Verify(TypePong, Envelope{Type: "WAT"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "Undefined error (WAT)" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestDecodeErrorWrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := &DecodeError{Reason: "malformed body", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to reach the cause")
	}
	if err.Error() != "malformed body: boom" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	bare := &DecodeError{Reason: "missing field"}
	if bare.Error() != "missing field" {
		t.Fatalf("unexpected message: %s", bare.Error())
	}
}
