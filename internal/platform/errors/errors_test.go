package errors

import (
	"encoding/json"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeTooLarge, http.StatusRequestEntityTooLarge},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatusCode(tc.code); got != tc.want {
			t.Fatalf("HTTPStatusCode(%v) = %d want %d", tc.code, got, tc.want)
		}
	}
}

func TestCodeNames(t *testing.T) {
	if ErrorCode(0).String() != "" {
		t.Fatalf("zero code should be blank")
	}
	if ErrorCodeInvalidArgument.String() != "invalid_argument" || ErrorCode(999).String() != "unknown" {
		t.Fatalf("unexpected names")
	}
	b, err := json.Marshal(Wire{Code: ErrorCodeTooLarge, Message: "batch too large"})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"code":"too_large","message":"batch too large"}` {
		t.Fatalf("wire json = %s", b)
	}

	var back Wire
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.Code != ErrorCodeTooLarge {
		t.Fatalf("round trip code = %v", back.Code)
	}
	var odd ErrorCode
	if err := odd.UnmarshalText([]byte("martian")); err != nil || odd != ErrorCodeUnknown {
		t.Fatalf("unknown name decoded to %v, %v", odd, err)
	}
}

func TestWrapAndInspect(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render")
	}

	cause := stderrs.New("conn reset")
	err := fmt.Errorf("repo: %w", Wrap(cause, ErrorCodeDB, "insert correction"))

	if CodeOf(err) != ErrorCodeDB || !IsCode(err, ErrorCodeDB) {
		t.Fatalf("code lost through fmt wrap")
	}
	if Root(err) != cause {
		t.Fatalf("Root = %v", Root(err))
	}
	if HTTPStatus(err) != http.StatusInternalServerError {
		t.Fatalf("status = %d", HTTPStatus(err))
	}
	if w := WireFrom(err); w.Message != "insert correction" {
		t.Fatalf("cause leaked to wire: %+v", w)
	}
	if WrapIf(nil, ErrorCodeDB, "x") != nil {
		t.Fatalf("WrapIf(nil) should be nil")
	}
}

func TestForeignErrors(t *testing.T) {
	err := stderrs.New("driver said something sensitive")
	w := WireFrom(err)
	if w.Code != ErrorCodeUnknown || w.Message != "internal error" {
		t.Fatalf("foreign wire = %+v", w)
	}
	if WithField(err, "content") != err {
		t.Fatalf("WithField should pass foreign errors through")
	}
	if status, w := HTTP(nil); status != http.StatusOK || w.Code != 0 {
		t.Fatalf("HTTP(nil) = %d %+v", status, w)
	}
}

func TestSugar(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{NotFoundf("correction %s", "x"), ErrorCodeNotFound},
		{InvalidArgf("unknown category %q", "foo"), ErrorCodeInvalidArgument},
		{TooLargef("batch of %d", 900), ErrorCodeTooLarge},
		{JSONErrf("bad"), ErrorCodeJSON},
		{PanicErrf("boom"), ErrorCodePanic},
		{Unavailablef("pg"), ErrorCodeUnavailable},
		{DBf("db"), ErrorCodeDB},
		{Internalf("x"), ErrorCodeUnknown},
	}
	for _, tc := range cases {
		if CodeOf(tc.err) != tc.code {
			t.Fatalf("%v: code %v want %v", tc.err, CodeOf(tc.err), tc.code)
		}
	}
	e := WithField(InvalidArgf("bad"), "corrected")
	if pe, _ := As(e); pe.Field() != "corrected" {
		t.Fatalf("field not set")
	}
}
