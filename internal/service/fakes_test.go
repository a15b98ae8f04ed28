package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"courseapi/internal/hash"
	"courseapi/internal/model"
)

// fakeHasher "hashes" by prefixing, like the hash package's mock.
type fakeHasher struct {
	failCheck bool
}

func (fakeHasher) Hash(password string) (string, error) {
	if len(password) > 72 {
		return "", fmt.Errorf("bcrypt hash: %w", hash.ErrPasswordTooLong)
	}
	return "mock:" + password, nil
}

func (h fakeHasher) Check(password, hash string) (bool, error) {
	if h.failCheck {
		return false, errors.New("check failed")
	}
	if !strings.HasPrefix(hash, "mock:") {
		return false, errors.New("malformed hash")
	}
	return "mock:"+password == hash, nil
}

type fakeUserRepo struct {
	users   map[int64]*model.User
	nextID  int64
	lookErr error
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int64]*model.User{}}
	for _, u := range users {
		r.nextID++
		u.ID = r.nextID
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	return r.users[id], r.lookErr
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if r.lookErr != nil {
		return nil, r.lookErr
	}
	for _, u := range r.users {
		if u.EmailAddress == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeCourseRepo struct {
	courses map[int64]model.Course
	nextID  int64
	updates int
	deletes int
}

func newFakeCourseRepo(courses ...model.Course) *fakeCourseRepo {
	r := &fakeCourseRepo{courses: map[int64]model.Course{}}
	for _, c := range courses {
		r.nextID++
		c.ID = r.nextID
		r.courses[c.ID] = c
	}
	return r
}

func (r *fakeCourseRepo) List(context.Context) ([]model.Course, error) {
	out := make([]model.Course, 0, len(r.courses))
	for id := int64(1); id <= r.nextID; id++ {
		if c, ok := r.courses[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id int64) (*model.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCourseRepo) Create(_ context.Context, c *model.Course) error {
	r.nextID++
	c.ID = r.nextID
	r.courses[c.ID] = *c
	return nil
}

func (r *fakeCourseRepo) Update(_ context.Context, c *model.Course) error {
	r.updates++
	r.courses[c.ID] = *c
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id int64) error {
	r.deletes++
	delete(r.courses, id)
	return nil
}

type published struct {
	topic   string
	payload []byte
	attrs   map[string]string
}

type fakePublisher struct {
	messages []published
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, topic string, payload []byte, attrs map[string]string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.messages = append(p.messages, published{topic: topic, payload: payload, attrs: attrs})
	return "msg-1", nil
}
