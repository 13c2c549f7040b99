package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignAndParseToken(t *testing.T) {
	m := NewManager("test_session_secret")

	sess := &Session{LoggedIn: true, Username: "alice01"}
	sess.Flash(CategorySuccess, "Welcome back!")

	token, err := m.signToken(sess)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := m.parseToken(token)
	assert.NoError(t, err)
	assert.True(t, parsed.LoggedIn)
	assert.Equal(t, "alice01", parsed.Username)

	flashes := parsed.PopFlashes()
	assert.Len(t, flashes, 1)
	assert.Equal(t, "Welcome back!", flashes[0].Message)
	assert.Equal(t, CategorySuccess, flashes[0].Category)

	// Flashes are single-read
	assert.Empty(t, parsed.PopFlashes())
}

func TestParseTokenRejectsTampering(t *testing.T) {
	m := NewManager("test_session_secret")

	sess := &Session{LoggedIn: true, Username: "alice01"}
	token, err := m.signToken(sess)
	assert.NoError(t, err)

	// Flip a character in the signature
	tampered := token[:len(token)-2] + "xx"
	_, err = m.parseToken(tampered)
	assert.Error(t, err)

	// A token signed with a different secret is rejected too
	other := NewManager("another_secret")
	otherToken, err := other.signToken(sess)
	assert.NoError(t, err)
	_, err = m.parseToken(otherToken)
	assert.Error(t, err)

	// Garbage input
	_, err = m.parseToken("not.a.token")
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	sess := &Session{LoggedIn: true, Username: "alice01"}
	sess.Flash(CategoryDanger, "something")

	sess.Clear()
	assert.False(t, sess.LoggedIn)
	assert.Empty(t, sess.Username)
	assert.Empty(t, sess.PopFlashes())
}

func TestEmptySessionWithoutFlashesRoundTrips(t *testing.T) {
	m := NewManager("test_session_secret")

	token, err := m.signToken(&Session{})
	assert.NoError(t, err)

	parsed, err := m.parseToken(token)
	assert.NoError(t, err)
	assert.False(t, parsed.LoggedIn)
	assert.Empty(t, parsed.Username)
	assert.Empty(t, parsed.PopFlashes())
}
