package session

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionActive is returned by StartListen when a session is already running.
	ErrSessionActive = errors.New("a capture session is already active")
	// ErrNoSession is returned by Stop when the controller is Idle.
	ErrNoSession = errors.New("no capture session is active")
	// ErrNotRecording is returned by Stop when the session was only listening.
	ErrNotRecording = errors.New("capture session was not recording")
	// ErrSessionJoin reports a session that exited but failed to release its connection.
	ErrSessionJoin = errors.New("capture session did not shut down cleanly")
	// ErrJoinTimeout reports a session that did not exit within the join timeout.
	ErrJoinTimeout = errors.New("timed out waiting for capture session to exit")
	// ErrRecordingNotFound is returned by Play for an unknown recording name.
	ErrRecordingNotFound = errors.New("recording not found")
)

// SessionError reports a lifecycle failure of a specific capture session.
// The controller is always Idle when one is returned from Stop or Kill.
type SessionError struct {
	Op        string
	SessionID string
	Err       error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s: %s: %v", e.SessionID, e.Op, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}
