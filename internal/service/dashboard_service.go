package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"seyone-academy-go/internal/model"
	"seyone-academy-go/pkg/log"
	"seyone-academy-go/pkg/storage"
)

// MaxAvatarSize is the largest accepted avatar upload.
const MaxAvatarSize = 2 << 20

var (
	ErrSendInProgress        = errors.New("a message is already being sent")
	ErrInstructorNotFound    = errors.New("instructor not found")
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrCourseNotEnrolled     = errors.New("not enrolled in this course")
	ErrCourseNotCompleted    = errors.New("course is not completed yet")
	ErrUnknownAvatarPreset   = errors.New("unknown avatar preset")
	ErrUnsupportedAvatarType = errors.New("avatar must be a JPEG, PNG, GIF or WebP image")
	ErrAvatarTooLarge        = errors.New("avatar is larger than 2 MB")
)

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DashboardOptions holds the simulated backend delays.
type DashboardOptions struct {
	SendDelay  time.Duration
	ReplyDelay time.Duration
}

// DashboardService simulates the student dashboard backend. Boards live in
// memory per client and user; they are dropped on logout.
type DashboardService interface {
	View(clientID string, user model.SessionMarker) model.DashboardView
	MarkRead(clientID string, user model.SessionMarker, notificationID string) error
	MarkAllRead(clientID string, user model.SessionMarker)
	// SendMessage starts sending text to an instructor. It returns once the
	// send is accepted; the instructor's reply arrives later as a notification.
	SendMessage(clientID string, user model.SessionMarker, instructorIndex int, text string) error
	TriggerIncomingMessage(clientID string, user model.SessionMarker, instructorIndex int) (model.Notification, error)
	Calendar(year int, month time.Month) model.CalendarMonth
	Certificate(ctx context.Context, clientID string, user model.SessionMarker, courseID string) (model.Certificate, error)
	SetPresetAvatar(clientID string, user model.SessionMarker, url string) error
	UploadAvatar(ctx context.Context, clientID string, user model.SessionMarker, contentType string, r io.Reader) (string, error)
	// Drop discards every board of clientID and cancels its pending timers.
	Drop(clientID string)
}

type board struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	studentName   string
	avatarURL     string
	notifications []model.Notification
	sending       bool
}

type dashboardService struct {
	opts    DashboardOptions
	objects storage.ObjectStore
	pick    func(n int) int

	mu     sync.Mutex
	boards map[string]*board
}

// NewDashboardService creates the simulator. objects may be nil, in which
// case certificates are returned inline and avatars become data URLs.
func NewDashboardService(opts DashboardOptions, objects storage.ObjectStore) DashboardService {
	return &dashboardService{
		opts:    opts,
		objects: objects,
		pick:    rand.IntN,
		boards:  make(map[string]*board),
	}
}

func boardKey(clientID, email string) string {
	return clientID + "|" + email
}

func (s *dashboardService) board(clientID string, user model.SessionMarker) *board {
	key := boardKey(clientID, user.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[key]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		b = &board{
			ctx:           ctx,
			cancel:        cancel,
			studentName:   user.Name,
			avatarURL:     presetAvatars[0],
			notifications: append([]model.Notification(nil), initialNotifications...),
		}
		s.boards[key] = b
	}
	return b
}

func (s *dashboardService) Drop(clientID string) {
	prefix := clientID + "|"
	s.mu.Lock()
	var dropped []*board
	for key, b := range s.boards {
		if strings.HasPrefix(key, prefix) {
			dropped = append(dropped, b)
			delete(s.boards, key)
		}
	}
	s.mu.Unlock()
	for _, b := range dropped {
		b.cancel()
	}
}

func (s *dashboardService) View(clientID string, user model.SessionMarker) model.DashboardView {
	b := s.board(clientID, user)
	b.mu.Lock()
	defer b.mu.Unlock()

	notifications := append([]model.Notification(nil), b.notifications...)
	unread := 0
	var history []model.Notification
	for _, n := range notifications {
		if !n.IsRead {
			unread++
		}
		if n.Type == model.NotificationMessage && len(history) < 3 {
			history = append(history, n)
		}
	}
	if history == nil {
		history = []model.Notification{}
	}

	return model.DashboardView{
		StudentName:    b.studentName,
		AvatarURL:      b.avatarURL,
		PresetAvatars:  append([]string(nil), presetAvatars...),
		Progress:       append([]model.StudentProgress(nil), progressData...),
		Deadlines:      append([]model.Deadline(nil), deadlines...),
		Notifications:  notifications,
		UnreadCount:    unread,
		MessageHistory: history,
		Instructors:    append([]model.Instructor(nil), instructors...),
		Sending:        b.sending,
	}
}

func (s *dashboardService) MarkRead(clientID string, user model.SessionMarker, notificationID string) error {
	b := s.board(clientID, user)
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.notifications {
		if b.notifications[i].ID == notificationID {
			b.notifications[i].IsRead = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (s *dashboardService) MarkAllRead(clientID string, user model.SessionMarker) {
	b := s.board(clientID, user)
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.notifications {
		b.notifications[i].IsRead = true
	}
}

func (s *dashboardService) SendMessage(clientID string, user model.SessionMarker, instructorIndex int, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	if instructorIndex < 0 || instructorIndex >= len(instructors) {
		return ErrInstructorNotFound
	}

	b := s.board(clientID, user)
	b.mu.Lock()
	if b.sending {
		b.mu.Unlock()
		return ErrSendInProgress
	}
	b.sending = true
	b.mu.Unlock()

	go func() {
		if !sleepCtx(b.ctx, s.opts.SendDelay) {
			return
		}
		b.mu.Lock()
		b.sending = false
		b.mu.Unlock()

		if !sleepCtx(b.ctx, s.opts.ReplyDelay) {
			return
		}
		s.pushReply(b, instructorIndex)
	}()
	return nil
}

func (s *dashboardService) TriggerIncomingMessage(clientID string, user model.SessionMarker, instructorIndex int) (model.Notification, error) {
	if instructorIndex < 0 || instructorIndex >= len(instructors) {
		return model.Notification{}, ErrInstructorNotFound
	}
	return s.pushReply(s.board(clientID, user), instructorIndex), nil
}

// pushReply prepends a canned reply from the instructor as an unread message.
func (s *dashboardService) pushReply(b *board, instructorIndex int) model.Notification {
	n := model.Notification{
		ID:        "n-" + uuid.NewString(),
		Title:     "Message from " + instructors[instructorIndex].Name,
		Message:   mockReplies[s.pick(len(mockReplies))],
		Type:      model.NotificationMessage,
		Timestamp: "Just now",
	}
	b.mu.Lock()
	b.notifications = append([]model.Notification{n}, b.notifications...)
	b.mu.Unlock()
	return n
}

func (s *dashboardService) Calendar(year int, month time.Month) model.CalendarMonth {
	return BuildCalendar(year, month, deadlines)
}

func (s *dashboardService) Certificate(ctx context.Context, clientID string, user model.SessionMarker, courseID string) (model.Certificate, error) {
	var progress *model.StudentProgress
	for i := range progressData {
		if progressData[i].CourseID == courseID {
			progress = &progressData[i]
			break
		}
	}
	if progress == nil {
		return model.Certificate{}, ErrCourseNotEnrolled
	}
	if !progress.Completed() {
		return model.Certificate{}, ErrCourseNotCompleted
	}

	b := s.board(clientID, user)
	b.mu.Lock()
	name := b.studentName
	b.mu.Unlock()

	cert := model.Certificate{
		StudentName: name,
		CourseID:    progress.CourseID,
		CourseName:  progress.CourseName,
		Date:        CertificateIssueDate,
	}
	html, err := RenderCertificate(cert)
	if err != nil {
		return model.Certificate{}, fmt.Errorf("failed to render certificate: %w", err)
	}

	if s.objects == nil {
		cert.HTML = html
		return cert, nil
	}
	objectName := path.Join("certificates", slug.Make(progress.CourseName)+"-"+slug.Make(clientID)+".html")
	if err := s.objects.Put(ctx, objectName, strings.NewReader(html), int64(len(html)), "text/html; charset=utf-8"); err != nil {
		log.Errorw("failed to store certificate, returning inline", "object", objectName, "error", err)
		cert.HTML = html
		return cert, nil
	}
	url, err := s.objects.PresignedURL(ctx, objectName)
	if err != nil {
		cert.HTML = html
		return cert, nil
	}
	cert.URL = url
	return cert, nil
}

func (s *dashboardService) SetPresetAvatar(clientID string, user model.SessionMarker, url string) error {
	for _, p := range presetAvatars {
		if p == url {
			b := s.board(clientID, user)
			b.mu.Lock()
			b.avatarURL = url
			b.mu.Unlock()
			return nil
		}
	}
	return ErrUnknownAvatarPreset
}

func (s *dashboardService) UploadAvatar(ctx context.Context, clientID string, user model.SessionMarker, contentType string, r io.Reader) (string, error) {
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return "", ErrUnsupportedAvatarType
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxAvatarSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read avatar: %w", err)
	}
	if len(data) > MaxAvatarSize {
		return "", ErrAvatarTooLarge
	}

	var url string
	if s.objects == nil {
		url = "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	} else {
		objectName := path.Join("avatars", uuid.NewString()+ext)
		if err := s.objects.Put(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
			return "", err
		}
		if url, err = s.objects.PresignedURL(ctx, objectName); err != nil {
			return "", err
		}
	}

	b := s.board(clientID, user)
	b.mu.Lock()
	b.avatarURL = url
	b.mu.Unlock()
	return url, nil
}

// sleepCtx waits for d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
