package bolt

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wtorkanorka/BlogSynergy/blog"
	"github.com/wtorkanorka/BlogSynergy/users"
)

func createDriver(t *testing.T) (*Driver, func()) {
	tmpFile, err := os.CreateTemp("", "blogsynergy-*.db")
	if err != nil {
		t.Fatal("could not create tmp file:", err)
	}
	tmpFile.Close()

	filename := tmpFile.Name()
	driver := Driver{}
	err = driver.Open(filename)
	if err != nil {
		os.Remove(filename)
		t.Fatal("could not create buckets: ", err)
	}

	return &driver, func() {
		driver.Close()
		os.Remove(filename)
	}
}

func TestPostRepository(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	blog.TestPostRepository(t, &PostRepository{Driver: driver})
}

func TestSubscriptionRepository(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	blog.TestSubscriptionRepository(t, &SubscriptionRepository{Driver: driver})
}

func TestUserRepository(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	users.TestRepository(t, &UserRepository{Driver: driver})
}

func TestTagIndex(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	blog.TestTagIndex(t, &TagIndex{Driver: driver})
}

func TestDriver_OpenTwice(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	assert.Error(t, driver.Open("whatever"), "opening an open driver should fail")
}
