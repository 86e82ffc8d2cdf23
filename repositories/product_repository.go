package repositories

import (
	"context"
	"io"
	"strconv"

	"storefront/libs"
	"storefront/models"
)

type ProductRepository struct {
	*Resource[models.Product]
	gw *libs.Gateway
}

func NewProductRepository(gw *libs.Gateway) *ProductRepository {
	return &ProductRepository{
		Resource: NewResource[models.Product](gw, ProductsPath),
		gw:       gw,
	}
}

func (r *ProductRepository) CreateImage(ctx context.Context, img models.ProductImage) (models.ProductImage, error) {
	if err := models.Validate(img); err != nil {
		return img, err
	}
	out := img
	err := r.gw.Post(ctx, ProductImagesPath, img, &out)
	return out, err
}

// UploadImage sends the file itself; the backend stores it and returns the record.
func (r *ProductRepository) UploadImage(ctx context.Context, productID int, filename string, file io.Reader, isPrimary bool) (models.ProductImage, error) {
	var out models.ProductImage
	err := r.gw.Upload(ctx, ProductImagesPath+"/upload", "file", filename, file, map[string]string{
		"productId": strconv.Itoa(productID),
		"isPrimary": strconv.FormatBool(isPrimary),
	}, &out)
	return out, err
}

func (r *ProductRepository) SetImagePrimary(ctx context.Context, imageID int, primary bool) error {
	return r.gw.Patch(ctx, ProductImagesPath+"/"+strconv.Itoa(imageID), map[string]bool{"isPrimary": primary}, nil)
}

func (r *ProductRepository) DeleteImage(ctx context.Context, imageID int) error {
	return r.gw.Delete(ctx, ProductImagesPath+"/"+strconv.Itoa(imageID))
}
