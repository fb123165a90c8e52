package integrity

import (
	"context"
	"testing"

	"addressable-resources/core/assets"
	"addressable-resources/core/storage/mocks"
	"addressable-resources/feature/resources/collection"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func testTable() *collection.Collection {
	c := collection.New()
	c.AddUnique("Textures/Hero", assets.NewReference("AddressableResources/Textures/Hero.png"))
	return c
}

func emptyListing() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func TestService_Structure(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, "test-bucket", "", "AddressableResources", StaticTable(testTable()), nil, zap.NewNop())

	t.Run("CheckStructure", func(t *testing.T) {
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(emptyListing())

		missing, err := svc.CheckStructure(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, []string{"AddressableResources/"}, missing)
	})

	t.Run("FixStructure", func(t *testing.T) {
		mockClient.On("PutObject", mock.Anything, "test-bucket", "AddressableResources/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)
		err := svc.FixStructure(context.Background(), []string{"AddressableResources/"})
		assert.NoError(t, err)
	})
}

func TestService_References(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("StatObject", mock.Anything, "test-bucket", "content/AddressableResources/Textures/Hero.png", mock.Anything).
		Return(minio.ObjectInfo{}, nil)
	svc := NewService(mockClient, "test-bucket", "content", "AddressableResources", StaticTable(testTable()), nil, zap.NewNop())

	report, err := svc.CheckReferences(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, 1, report.Checked)
}

func TestService_Schema(t *testing.T) {
	svc := NewService(new(mocks.Client), "test-bucket", "", "AddressableResources", StaticTable(testTable()), nil, zap.NewNop())
	assert.False(t, svc.HasDatabase())
	_, err := svc.CheckSchema()
	assert.Error(t, err)

	db, sqlMock := setupMockDB(t)
	sqlMock.ExpectQuery("SHOW COLUMNS").WillReturnRows(
		sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("id", "int", "NO", "PRI", nil, "").
			AddRow("position", "int", "NO", "", nil, "").
			AddRow("resource_key", "varchar(255)", "NO", "UNI", nil, "").
			AddRow("address", "varchar(1024)", "NO", "", nil, ""))

	svc = NewService(new(mocks.Client), "test-bucket", "", "AddressableResources", StaticTable(testTable()), db, zap.NewNop())
	report, err := svc.CheckSchema()
	require.NoError(t, err)
	assert.True(t, report.Matched)
}
