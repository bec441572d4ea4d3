package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/shortlink-service/internal/entity"
)

type ShortlinkRepositoryTestSuite struct {
	suite.Suite
	repo *ShortlinkRepository
}

func (suite *ShortlinkRepositoryTestSuite) SetupSubTest() {
	suite.repo = NewShortlinkRepository()
}

func (suite *ShortlinkRepositoryTestSuite) newShortlink(key string) *entity.Shortlink {
	return &entity.Shortlink{
		Key: key,
		Redirects: []entity.Redirect{
			{From: 0, To: 24, URL: "https://google.com"},
		},
	}
}

func (suite *ShortlinkRepositoryTestSuite) TestNextID() {
	suite.Run("starts at one", func() {
		id, err := suite.repo.NextID(context.Background())

		suite.NoError(err)
		suite.Equal(uint64(1), id)
	})

	suite.Run("concurrent allocations", func() {
		const n = 1000

		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				suite.repo.NextID(context.Background())
			}()
		}
		wg.Wait()

		id, err := suite.repo.NextID(context.Background())

		suite.NoError(err)
		suite.Equal(uint64(n+1), id)
	})
}

func (suite *ShortlinkRepositoryTestSuite) TestSave() {
	suite.Run("success", func() {
		sl, err := suite.repo.Save(context.Background(), suite.newShortlink("abc"))

		suite.NoError(err)
		suite.NotNil(sl)
		suite.NotEmpty(sl.ID)
		suite.Equal("abc", sl.Key)
		suite.Equal(entity.KeyTypeStandard, sl.KeyType)
		suite.False(sl.CreatedAt.IsZero())
	})

	suite.Run("key exists", func() {
		_, err := suite.repo.Save(context.Background(), suite.newShortlink("abc"))
		suite.Require().NoError(err)

		sl, err := suite.repo.Save(context.Background(), suite.newShortlink("abc"))

		suite.ErrorIs(err, entity.ErrKeyExists)
		suite.Nil(sl)
	})

	suite.Run("stored copy is detached from caller", func() {
		in := suite.newShortlink("abc")
		_, err := suite.repo.Save(context.Background(), in)
		suite.Require().NoError(err)

		in.Redirects[0].URL = "https://changed.com"

		sl, err := suite.repo.RetrieveByKey(context.Background(), "abc")
		suite.Require().NoError(err)
		suite.Equal("https://google.com", sl.Redirects[0].URL)
	})
}

func (suite *ShortlinkRepositoryTestSuite) TestRetrieveAndUpdateStats() {
	suite.Run("shortlink not found", func() {
		sl, err := suite.repo.RetrieveAndUpdateStats(context.Background(), "abc")

		suite.ErrorIs(err, entity.ErrShortlinkNotFound)
		suite.Nil(sl)
	})

	suite.Run("concurrent visits", func() {
		_, err := suite.repo.Save(context.Background(), suite.newShortlink("abc"))
		suite.Require().NoError(err)

		const visits = 1000

		var wg sync.WaitGroup
		for i := 0; i < visits; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				suite.repo.RetrieveAndUpdateStats(context.Background(), "abc")
			}()
		}
		wg.Wait()

		sl, err := suite.repo.RetrieveByKey(context.Background(), "abc")

		suite.NoError(err)
		suite.Equal(int64(visits), sl.Visits)
	})
}

func (suite *ShortlinkRepositoryTestSuite) TestRemove() {
	suite.Run("shortlink not found", func() {
		err := suite.repo.Remove(context.Background(), "abc")

		suite.ErrorIs(err, entity.ErrShortlinkNotFound)
	})

	suite.Run("soft delete", func() {
		for _, key := range []string{"abc", "def"} {
			_, err := suite.repo.Save(context.Background(), suite.newShortlink(key))
			suite.Require().NoError(err)
		}

		suite.NoError(suite.repo.Remove(context.Background(), "abc"))
		suite.ErrorIs(suite.repo.Remove(context.Background(), "abc"), entity.ErrShortlinkNotFound)

		_, err := suite.repo.RetrieveByKey(context.Background(), "abc")
		suite.ErrorIs(err, entity.ErrShortlinkNotFound)

		all, err := suite.repo.RetrieveAll(context.Background())
		suite.NoError(err)
		suite.Len(all, 1)
		suite.Equal("def", all[0].Key)

		_, err = suite.repo.Save(context.Background(), suite.newShortlink("abc"))
		suite.ErrorIs(err, entity.ErrKeyExists)
	})
}

func TestShortlinkRepository(t *testing.T) {
	suite.Run(t, new(ShortlinkRepositoryTestSuite))
}
