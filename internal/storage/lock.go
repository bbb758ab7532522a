package storage

import (
	"os"
	"syscall"
)

// FileLock is an exclusive advisory lock held on a file via flock(2).
// It serializes concurrent gw processes writing the same state file.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock returns an unlocked lock for path. The file is created on
// the first Lock.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

// Lock blocks until the lock is held.
func (l *FileLock) Lock() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return err
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return err
	}
	l.file = f
	return nil
}

// Unlock releases the lock. Calling it on an unlocked FileLock is a no-op.
func (l *FileLock) Unlock() error {
	f := l.file
	if f == nil {
		return nil
	}
	l.file = nil

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_UN); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
