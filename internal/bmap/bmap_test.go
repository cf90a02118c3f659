package bmap

import (
	"testing"

	. "github.com/ava12/rdx/internal/test"
)

func TestEmptyKey(t *testing.T) {
	m := New[int](1)
	m.Intern([]byte("foo"), 123)

	en, found := m.Intern([]byte{}, 345)
	ExpectInt(t, 345, en)
	ExpectBool(t, false, found)

	en, found = m.Intern(nil, 0)
	ExpectInt(t, 345, en)
	ExpectBool(t, true, found)
}

func TestKeyIsCopied(t *testing.T) {
	m := New[int](2)
	key := []byte{1, 2, 3}
	m.Intern(key, 111)
	key[0] = 9

	en, found := m.Intern([]byte{1, 2, 3}, 0)
	ExpectInt(t, 111, en)
	ExpectBool(t, true, found)

	_, found = m.Intern(key, 222)
	ExpectBool(t, false, found)
}

func TestIntern(t *testing.T) {
	m := New[int](2)
	v, found := m.Intern([]byte("abc"), 1)
	ExpectInt(t, 1, v)
	ExpectBool(t, false, found)

	v, found = m.Intern([]byte("abc"), 2)
	ExpectInt(t, 1, v)
	ExpectBool(t, true, found)

	v, found = m.Intern([]byte("ab"), 3)
	ExpectInt(t, 3, v)
	ExpectBool(t, false, found)
}
