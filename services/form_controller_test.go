package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/libs"
	"storefront/models"
)

type fakeCategorySaver struct {
	created []models.Category
	updated map[int]models.Category
	err     error
}

func (s *fakeCategorySaver) Create(_ context.Context, rec models.Category) (models.Category, error) {
	if s.err != nil {
		return rec, s.err
	}
	rec.ID = 100 + len(s.created)
	s.created = append(s.created, rec)
	return rec, nil
}

func (s *fakeCategorySaver) Update(_ context.Context, id int, rec models.Category) (models.Category, error) {
	if s.err != nil {
		return rec, s.err
	}
	if s.updated == nil {
		s.updated = map[int]models.Category{}
	}
	rec.ID = id
	s.updated[id] = rec
	return rec, nil
}

func TestFormController_ModeIsExplicit(t *testing.T) {
	saver := &fakeCategorySaver{}
	var alerts []models.Alert
	refreshed := 0
	opts := []FormOption[models.Category]{
		WithRefresh[models.Category](func(context.Context) { refreshed++ }),
		WithAlert[models.Category](func(a models.Alert) { alerts = append(alerts, a) }),
	}

	// An id on the record does not switch a create form into update.
	create := NewFormController[models.Category](saver, CreateMode(), models.Category{}, opts...)
	saved, err := create.Submit(context.Background(), models.Category{ID: 7, Name: "Tea"})
	require.NoError(t, err)
	assert.Equal(t, 100, saved.ID)
	assert.Len(t, saver.created, 1)
	assert.False(t, create.IsOpen())

	update := NewFormController[models.Category](saver, UpdateMode(3), models.Category{ID: 3, Name: "Old"}, opts...)
	_, err = update.Submit(context.Background(), models.Category{Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, "New", saver.updated[3].Name)

	assert.Equal(t, 2, refreshed)
	require.Len(t, alerts, 2)
	assert.Equal(t, models.AlertSuccess, alerts[0].Kind)
	assert.Equal(t, models.ToastDuration.Milliseconds(), alerts[0].DismissAfterMS)
	assert.Equal(t, "update(3)", update.Mode().String())
}

func TestFormController_FailureKeepsFormOpen(t *testing.T) {
	saver := &fakeCategorySaver{err: &models.APIError{Status: 400}}
	refreshed := false
	form := NewFormController[models.Category](saver, CreateMode(), models.Category{},
		WithRefresh[models.Category](func(context.Context) { refreshed = true }))

	_, err := form.Submit(context.Background(), models.Category{Name: "Tea"})
	require.Error(t, err)
	assert.True(t, form.IsOpen())
	assert.False(t, refreshed)
}

func TestProductInput_ParsesNumericText(t *testing.T) {
	in := models.ProductInput{
		Name:          " Latte ",
		InitialPrice:  "2.5",
		SellingPrice:  "3.75",
		CategoryID:    "4",
		StockQuantity: "",
		IsActive:      true,
	}
	p, err := in.ToModel()
	require.NoError(t, err)
	assert.Equal(t, "Latte", p.Name)
	assert.Equal(t, 3.75, p.SellingPrice)
	assert.Equal(t, 4, p.CategoryID)
	assert.Zero(t, p.StockQuantity)

	in.SellingPrice = "abc"
	_, err = in.ToModel()
	assert.ErrorIs(t, err, models.ErrValidation)
}

type imageCall struct {
	op      string
	id      int
	primary bool
}

type fakeProductStore struct {
	fakeSaver
	calls     []imageCall
	nextID    int
	failOn    string
	failAfter int
}

type fakeSaver struct{}

func (fakeSaver) Create(_ context.Context, p models.Product) (models.Product, error) {
	p.ID = 50
	return p, nil
}

func (fakeSaver) Update(_ context.Context, id int, p models.Product) (models.Product, error) {
	p.ID = id
	return p, nil
}

func (s *fakeProductStore) fail(op string) error {
	if s.failOn != op {
		return nil
	}
	if s.failAfter > 0 {
		s.failAfter--
		return nil
	}
	return errors.New(op + " failed")
}

func (s *fakeProductStore) CreateImage(_ context.Context, img models.ProductImage) (models.ProductImage, error) {
	if err := s.fail("create"); err != nil {
		return img, err
	}
	s.nextID++
	img.ID = 900 + s.nextID
	s.calls = append(s.calls, imageCall{"create", img.ID, img.IsPrimary})
	return img, nil
}

func (s *fakeProductStore) UploadImage(_ context.Context, productID int, filename string, file io.Reader, primary bool) (models.ProductImage, error) {
	if err := s.fail("upload"); err != nil {
		return models.ProductImage{}, err
	}
	s.nextID++
	img := models.ProductImage{ID: 900 + s.nextID, ProductID: productID, ImageURL: "/uploads/" + filename, IsPrimary: primary}
	s.calls = append(s.calls, imageCall{"upload", img.ID, primary})
	return img, nil
}

func (s *fakeProductStore) SetImagePrimary(_ context.Context, id int, primary bool) error {
	if err := s.fail("primary"); err != nil {
		return err
	}
	s.calls = append(s.calls, imageCall{"primary", id, primary})
	return nil
}

func (s *fakeProductStore) DeleteImage(_ context.Context, id int) error {
	if err := s.fail("delete"); err != nil {
		return err
	}
	s.calls = append(s.calls, imageCall{"delete", id, false})
	return nil
}

type fakeHost struct {
	destroyed []string
}

func (h *fakeHost) Upload(_ context.Context, _ io.Reader, filename string) (libs.HostedImage, error) {
	return libs.HostedImage{URL: "https://cdn/" + filename, PublicID: "pid-" + filename}, nil
}

func (h *fakeHost) Destroy(_ context.Context, publicID string) error {
	h.destroyed = append(h.destroyed, publicID)
	return nil
}

func existingProduct() models.Product {
	return models.Product{ID: 8, Name: "Latte", Images: []models.ProductImage{
		{ID: 1, ImageURL: "one.png", IsPrimary: true},
		{ID: 2, ImageURL: "two.png"},
		{ID: 3, ImageURL: "three.png"},
	}}
}

func primaries(f *ProductForm) []int {
	var out []int
	for i, img := range f.Images() {
		if img.IsPrimary {
			out = append(out, i)
		}
	}
	return out
}

func TestProductForm_TogglePrimary(t *testing.T) {
	f := NewProductForm(&fakeProductStore{}, nil, UpdateMode(8), existingProduct(), nil)

	f.TogglePrimary(1)
	assert.Equal(t, []int{1}, primaries(f))

	f.TogglePrimary(1)
	assert.Empty(t, primaries(f))

	f.AddImage("four.png", true)
	assert.Equal(t, []int{3}, primaries(f))
}

func TestProductForm_SyncRunsPhasesInOrder(t *testing.T) {
	st := &fakeProductStore{}
	f := NewProductForm(st, nil, UpdateMode(8), existingProduct(), nil)

	f.RemoveImage(2)
	f.TogglePrimary(1)
	f.AddImage("four.png", false)
	f.AddUpload("five.jpg", []byte("img"), false)

	saved, err := f.Submit(context.Background(), models.Product{Name: "Latte"})
	require.NoError(t, err)

	assert.Equal(t, []imageCall{
		{"delete", 3, false},
		{"primary", 1, false},
		{"primary", 2, true},
		{"create", 901, false},
		{"upload", 902, false},
	}, st.calls)
	require.Len(t, saved.Images, 4)
	assert.Equal(t, "/uploads/five.jpg", saved.Images[3].ImageURL)
	assert.Equal(t, 8, saved.Images[0].ProductID)
	assert.Empty(t, f.Removed())
	assert.False(t, f.IsOpen())
}

func TestProductForm_CompensatesOnCreateFailure(t *testing.T) {
	st := &fakeProductStore{failOn: "create", failAfter: 1}
	host := &fakeHost{}
	f := NewProductForm(st, host, UpdateMode(8), existingProduct(), nil)

	f.TogglePrimary(2)
	f.AddUpload("a.jpg", []byte("a"), false)
	f.AddImage("b.png", false)

	_, err := f.Submit(context.Background(), models.Product{Name: "Latte"})

	var syncErr *ImageSyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, StepCreateImages, syncErr.Step)
	assert.True(t, syncErr.Compensated)
	assert.True(t, f.IsOpen())

	assert.Equal(t, []imageCall{
		{"primary", 1, false},
		{"primary", 3, true},
		{"create", 901, false},
		{"delete", 901, false},
		{"primary", 1, true},
		{"primary", 3, false},
	}, st.calls)
	assert.Equal(t, []string{"pid-a.jpg"}, host.destroyed)

	for _, img := range f.Images() {
		if img.ImageURL == "b.png" {
			assert.True(t, img.IsNew())
		}
	}
}

func TestProductForm_DeleteFailureIsNotCompensated(t *testing.T) {
	st := &fakeProductStore{failOn: "delete", failAfter: 1}
	f := NewProductForm(st, nil, UpdateMode(8), existingProduct(), nil)
	f.RemoveImage(2)
	f.RemoveImage(1)

	_, err := f.SyncImages(context.Background(), 8)

	var syncErr *ImageSyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, StepDeleteImages, syncErr.Step)
	assert.False(t, syncErr.Compensated)
	assert.Equal(t, []int{3}, syncErr.Deleted)
	assert.Equal(t, []int{2}, f.Removed())
}

func TestProductForm_ApplyImages(t *testing.T) {
	f := NewProductForm(&fakeProductStore{}, nil, UpdateMode(8), existingProduct(), nil)

	f.ApplyImages([]models.ImageInput{
		{ID: 2, IsPrimary: true},
		{ID: 3, IsPrimary: true},
		{ImageURL: "new.png"},
	})

	imgs := f.Images()
	require.Len(t, imgs, 3)
	assert.Equal(t, 2, imgs[0].ID)
	assert.True(t, imgs[0].IsPrimary)
	assert.False(t, imgs[1].IsPrimary)
	assert.True(t, imgs[2].IsNew())
	assert.Equal(t, []int{1}, f.Removed())
}

type recordingSaver struct {
	fakeCategorySaver
	sentIDs []int
}

func (s *recordingSaver) Update(ctx context.Context, id int, rec models.Category) (models.Category, error) {
	s.sentIDs = append(s.sentIDs, rec.ID)
	return s.fakeCategorySaver.Update(ctx, id, rec)
}

func TestFormController_UpdateSendsModeID(t *testing.T) {
	saver := &recordingSaver{}
	form := NewFormController[models.Category](saver, UpdateMode(9), models.Category{ID: 9, Name: "Old"})

	_, err := form.Submit(context.Background(), models.Category{ID: 4, Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, []int{9}, saver.sentIDs)
}

func TestProductForm_SavesImageAddedByURL(t *testing.T) {
	st := &fakeProductStore{}
	f := NewProductForm(st, &fakeHost{}, UpdateMode(8), models.Product{ID: 8, Name: "Latte"}, nil)

	f.AddImage("https://cdn/latte.png", true)
	images, err := f.SyncImages(context.Background(), 8)
	require.NoError(t, err)

	assert.Equal(t, []imageCall{{"create", 901, true}}, st.calls)
	require.Len(t, images, 1)
	assert.Equal(t, 901, images[0].ID)
	assert.Equal(t, "https://cdn/latte.png", images[0].ImageURL)
	assert.True(t, images[0].IsPrimary)
	assert.False(t, f.Images()[0].IsNew())
}
