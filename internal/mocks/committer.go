package mocks

import "context"

// CommittedFile records one PutFile call.
type CommittedFile struct {
	Path    string
	Message string
	Content []byte
}

// Mock Committer
type MockCommitter struct {
	Puts        []CommittedFile
	Deletes     []string
	PutFileFunc func(ctx context.Context, path, message string, content []byte) error
}

func (m *MockCommitter) PutFile(ctx context.Context, path, message string, content []byte) error {
	m.Puts = append(m.Puts, CommittedFile{Path: path, Message: message, Content: content})
	if m.PutFileFunc != nil {
		return m.PutFileFunc(ctx, path, message, content)
	}
	return nil
}

func (m *MockCommitter) DeleteFile(ctx context.Context, path, message string) error {
	m.Deletes = append(m.Deletes, path)
	return nil
}
