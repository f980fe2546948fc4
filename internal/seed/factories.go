package seed

import (
	"fmt"
	"strings"
	"time"

	"bucketlist/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// Factory builds demo entities from a seeded faker so runs are reproducible.
type Factory struct {
	faker *gofakeit.Faker
	now   time.Time
}

// NewFactory returns a Factory. The same seed always yields the same data.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed), now: time.Now().UTC()}
}

// BuildUser returns an unsaved user. n keeps email and username unique across a run.
func (f *Factory) BuildUser(n int, passwordHash string) *models.User {
	first := f.faker.FirstName()
	last := f.faker.LastName()

	handle := strings.ToLower(first + "." + last)
	handle = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || r == '.' {
			return r
		}
		return -1
	}, handle)
	suffix := fmt.Sprintf("%d", n)
	if max := 25 - len(suffix); len(handle) > max {
		handle = handle[:max]
	}
	handle += suffix

	return &models.User{
		Email:        handle + "@example.com",
		Username:     handle,
		FirstName:    truncate(first, 25),
		LastName:     truncate(last, 25),
		PasswordHash: passwordHash,
	}
}

// BuildBucketlist returns an unsaved bucketlist for owner. n keeps titles unique per owner.
func (f *Factory) BuildBucketlist(owner *models.User, n int) *models.Bucketlist {
	var title string
	switch f.faker.Number(0, 2) {
	case 0:
		title = "Visit " + f.faker.Country()
	case 1:
		title = "Things to do in " + f.faker.City()
	default:
		title = strings.TrimSuffix(f.faker.Sentence(3), ".")
	}
	created := f.pastTime(90)
	return &models.Bucketlist{
		Title:        truncate(fmt.Sprintf("%s #%d", title, n), 100),
		UsersEmail:   owner.Email,
		DateCreated:  created,
		DateModified: created,
	}
}

// BuildItem returns an unsaved item inside bucketlist. n keeps names unique per bucketlist.
func (f *Factory) BuildItem(bucketlist *models.Bucketlist, n int) *models.Item {
	created := f.pastTime(30)
	name := fmt.Sprintf("%s %s %s (%d)", f.faker.Verb(), f.faker.Adjective(), f.faker.Noun(), n)
	return &models.Item{
		Name:         truncate(name, 255),
		Done:         f.faker.Bool(),
		BucketlistID: bucketlist.ID,
		DateCreated:  created,
		DateModified: created,
	}
}

func (f *Factory) pastTime(maxDays int) time.Time {
	back := time.Duration(f.faker.Number(0, maxDays*24*60)) * time.Minute
	return f.now.Add(-back)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
