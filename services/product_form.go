package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"storefront/libs"
	"storefront/models"
)

// ProductStore is what the product form needs from the backend.
type ProductStore interface {
	Saver[models.Product]
	CreateImage(ctx context.Context, img models.ProductImage) (models.ProductImage, error)
	UploadImage(ctx context.Context, productID int, filename string, file io.Reader, isPrimary bool) (models.ProductImage, error)
	SetImagePrimary(ctx context.Context, imageID int, primary bool) error
	DeleteImage(ctx context.Context, imageID int) error
}

// ImageHost stores image files outside the backend.
type ImageHost interface {
	Upload(ctx context.Context, file io.Reader, filename string) (libs.HostedImage, error)
	Destroy(ctx context.Context, publicID string) error
}

type SyncStep string

const (
	StepSaveProduct  SyncStep = "save-product"
	StepDeleteImages SyncStep = "delete-images"
	StepPrimaryFlags SyncStep = "primary-flags"
	StepCreateImages SyncStep = "create-images"
)

// ImageSyncError reports the step that failed. Compensated is true when
// every reversible step already taken was undone. Deleted lists removals
// that had already reached the backend; those cannot be restored.
type ImageSyncError struct {
	Step        SyncStep
	Compensated bool
	Deleted     []int
	Err         error
}

func (e *ImageSyncError) Error() string {
	return fmt.Sprintf("image sync failed at %s (compensated=%t): %v", e.Step, e.Compensated, e.Err)
}

func (e *ImageSyncError) Unwrap() error { return e.Err }

// ImageDraft is one image slot of the form. ID is zero until the image
// exists on the backend.
type ImageDraft struct {
	ID        int    `json:"id"`
	ImageURL  string `json:"imageUrl"`
	IsPrimary bool   `json:"isPrimary"`

	filename      string
	data          []byte
	storedPrimary bool
}

func (d ImageDraft) IsNew() bool { return d.ID == 0 }

// ProductForm extends the entity form with an image list. Saving runs
// delete, primary-flag and create phases in order and undoes what it can
// when a later phase fails.
type ProductForm struct {
	form    *FormController[models.Product]
	store   ProductStore
	host    ImageHost
	logger  *zap.Logger
	images  []ImageDraft
	removed []int
}

func NewProductForm(store ProductStore, host ImageHost, mode FormMode, existing models.Product, logger *zap.Logger, opts ...FormOption[models.Product]) *ProductForm {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &ProductForm{
		form:   NewFormController[models.Product](store, mode, existing, opts...),
		store:  store,
		host:   host,
		logger: logger,
	}
	for _, img := range existing.Images {
		f.images = append(f.images, ImageDraft{
			ID:            img.ID,
			ImageURL:      img.ImageURL,
			IsPrimary:     img.IsPrimary,
			storedPrimary: img.IsPrimary,
		})
	}
	return f
}

func (f *ProductForm) Mode() FormMode { return f.form.Mode() }

func (f *ProductForm) IsOpen() bool { return f.form.IsOpen() }

func (f *ProductForm) Images() []ImageDraft {
	out := make([]ImageDraft, len(f.images))
	copy(out, f.images)
	return out
}

// Removed returns the ids queued for deletion on the next save.
func (f *ProductForm) Removed() []int {
	return append([]int(nil), f.removed...)
}

// AddImage appends an image by URL. A primary addition takes the flag from
// whichever image held it.
func (f *ProductForm) AddImage(url string, primary bool) int {
	f.images = append(f.images, ImageDraft{ImageURL: url})
	idx := len(f.images) - 1
	if primary {
		f.TogglePrimary(idx)
	}
	return idx
}

// AddUpload appends an image file that is uploaded on save.
func (f *ProductForm) AddUpload(filename string, data []byte, primary bool) int {
	f.images = append(f.images, ImageDraft{filename: filename, data: data})
	idx := len(f.images) - 1
	if primary {
		f.TogglePrimary(idx)
	}
	return idx
}

// RemoveImage drops the slot at idx. Stored images are deleted on save.
func (f *ProductForm) RemoveImage(idx int) {
	if idx < 0 || idx >= len(f.images) {
		return
	}
	if id := f.images[idx].ID; id != 0 {
		f.removed = append(f.removed, id)
	}
	f.images = append(f.images[:idx], f.images[idx+1:]...)
}

// TogglePrimary makes idx the only primary image, or clears it when idx
// already was primary.
func (f *ProductForm) TogglePrimary(idx int) {
	if idx < 0 || idx >= len(f.images) {
		return
	}
	if f.images[idx].IsPrimary {
		f.images[idx].IsPrimary = false
		return
	}
	for i := range f.images {
		f.images[i].IsPrimary = i == idx
	}
}

// ApplyImages reconciles the slots with a submitted image list: stored
// images missing from it are removed, ids not known to the form are
// ignored, entries without id are added. The first primary entry wins.
func (f *ProductForm) ApplyImages(inputs []models.ImageInput) {
	keep := make(map[int]bool, len(inputs))
	for _, in := range inputs {
		if in.ID != 0 {
			keep[in.ID] = true
		}
	}
	for i := len(f.images) - 1; i >= 0; i-- {
		if !f.images[i].IsNew() && !keep[f.images[i].ID] {
			f.RemoveImage(i)
		}
	}
	for i := range f.images {
		f.images[i].IsPrimary = false
	}

	primaryTaken := false
	for _, in := range inputs {
		primary := in.IsPrimary && !primaryTaken
		primaryTaken = primaryTaken || primary
		if in.ID == 0 {
			if in.ImageURL != "" {
				f.images = append(f.images, ImageDraft{ImageURL: in.ImageURL, IsPrimary: primary})
			}
			continue
		}
		for i := range f.images {
			if f.images[i].ID == in.ID {
				f.images[i].IsPrimary = primary
			}
		}
	}
}

// Submit saves the product and then synchronizes its images. The product
// itself stays saved when image sync fails.
func (f *ProductForm) Submit(ctx context.Context, p models.Product) (models.Product, error) {
	p.Images = nil
	saved, err := f.form.save(ctx, p)
	if err != nil {
		return saved, err
	}
	productID := saved.ID
	if productID == 0 {
		productID = f.form.Mode().ID
	}
	images, err := f.SyncImages(ctx, productID)
	if err != nil {
		return saved, err
	}
	saved.Images = images
	f.form.finish(ctx)
	return saved, nil
}

// SyncImages pushes pending image changes for productID.
func (f *ProductForm) SyncImages(ctx context.Context, productID int) ([]models.ProductImage, error) {
	if productID == 0 {
		return nil, &ImageSyncError{Step: StepSaveProduct, Compensated: true, Err: errors.New("product has no id")}
	}

	var deleted []int
	for _, id := range f.removed {
		if err := f.store.DeleteImage(ctx, id); err != nil {
			f.removed = f.removed[len(deleted):]
			return nil, &ImageSyncError{Step: StepDeleteImages, Compensated: len(deleted) == 0, Deleted: deleted, Err: err}
		}
		deleted = append(deleted, id)
	}
	f.removed = nil

	var flipped []int
	for i, img := range f.images {
		if img.IsNew() || img.IsPrimary == img.storedPrimary {
			continue
		}
		if err := f.store.SetImagePrimary(ctx, img.ID, img.IsPrimary); err != nil {
			ok := f.revertFlags(ctx, flipped)
			return nil, &ImageSyncError{Step: StepPrimaryFlags, Compensated: ok && len(deleted) == 0, Deleted: deleted, Err: err}
		}
		flipped = append(flipped, i)
	}

	var created []int
	var hosted []string
	for i, img := range f.images {
		if !img.IsNew() {
			continue
		}
		rec, publicID, err := f.createImage(ctx, productID, img)
		if publicID != "" {
			hosted = append(hosted, publicID)
		}
		if err != nil {
			ok := f.dropCreated(ctx, created, hosted)
			ok = f.revertFlags(ctx, flipped) && ok
			return nil, &ImageSyncError{Step: StepCreateImages, Compensated: ok && len(deleted) == 0, Deleted: deleted, Err: err}
		}
		f.images[i].ID = rec.ID
		if rec.ImageURL != "" {
			f.images[i].ImageURL = rec.ImageURL
		}
		created = append(created, rec.ID)
	}

	out := make([]models.ProductImage, 0, len(f.images))
	for i := range f.images {
		f.images[i].storedPrimary = f.images[i].IsPrimary
		f.images[i].data = nil
		out = append(out, models.ProductImage{
			ID:        f.images[i].ID,
			ProductID: productID,
			ImageURL:  f.images[i].ImageURL,
			IsPrimary: f.images[i].IsPrimary,
		})
	}
	return out, nil
}

func (f *ProductForm) createImage(ctx context.Context, productID int, img ImageDraft) (models.ProductImage, string, error) {
	if img.filename == "" {
		rec, err := f.store.CreateImage(ctx, models.ProductImage{ProductID: productID, ImageURL: img.ImageURL, IsPrimary: img.IsPrimary})
		return rec, "", err
	}
	if f.host == nil {
		rec, err := f.store.UploadImage(ctx, productID, img.filename, bytes.NewReader(img.data), img.IsPrimary)
		return rec, "", err
	}
	hostedImg, err := f.host.Upload(ctx, bytes.NewReader(img.data), img.filename)
	if err != nil {
		return models.ProductImage{}, "", err
	}
	rec, err := f.store.CreateImage(ctx, models.ProductImage{ProductID: productID, ImageURL: hostedImg.URL, IsPrimary: img.IsPrimary})
	return rec, hostedImg.PublicID, err
}

func (f *ProductForm) revertFlags(ctx context.Context, flipped []int) bool {
	ok := true
	for _, i := range flipped {
		img := f.images[i]
		if err := f.store.SetImagePrimary(ctx, img.ID, img.storedPrimary); err != nil {
			f.logger.Warn("Failed to revert primary flag", zap.Int("image_id", img.ID), zap.Error(err))
			ok = false
		}
	}
	return ok
}

func (f *ProductForm) dropCreated(ctx context.Context, created []int, hosted []string) bool {
	ok := true
	for _, id := range created {
		if err := f.store.DeleteImage(ctx, id); err != nil {
			f.logger.Warn("Failed to delete created image", zap.Int("image_id", id), zap.Error(err))
			ok = false
		}
	}
	for i, img := range f.images {
		for _, id := range created {
			if img.ID == id {
				f.images[i].ID = 0
			}
		}
	}
	for _, publicID := range hosted {
		if err := f.host.Destroy(ctx, publicID); err != nil {
			f.logger.Warn("Failed to destroy hosted image", zap.String("public_id", publicID), zap.Error(err))
			ok = false
		}
	}
	return ok
}
