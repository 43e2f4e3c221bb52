package restaurant

import (
	"booktable/infras/s3"
	"booktable/shared/constant"
	"booktable/shared/failure"
	"booktable/shared/validator"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
)

type formDecoder interface {
	FromForm(form url.Values) error
}

// decodeRequest fills req from a JSON, urlencoded or multipart body and
// validates it. Multipart files under "photos" are opened for upload; the
// returned release func closes them.
func decodeRequest[T any, PT interface {
	*T
	formDecoder
}](r *http.Request, req PT) (uploads []s3.Object, release func(), err error) {
	release = func() {}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get(constant.RequestHeaderContentType))

	switch mediaType {
	case constant.ContentTypeMultipartFormData:
		if err = r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
			return nil, release, failure.BadRequest(fmt.Errorf("failed to parse multipart form: %w", err))
		}

		if err = req.FromForm(url.Values(r.MultipartForm.Value)); err != nil {
			return nil, release, err
		}

		uploads, release, err = openUploads(r.MultipartForm.File[constant.FormFilePhotos])
		if err != nil {
			return nil, release, err
		}
	case constant.ContentTypeFormURLEncoded:
		if err = r.ParseForm(); err != nil {
			return nil, release, failure.BadRequest(fmt.Errorf("failed to parse form: %w", err))
		}

		if err = req.FromForm(r.PostForm); err != nil {
			return nil, release, err
		}
	default:
		if err = validator.Validate(r.Body, (*T)(req)); err != nil {
			return nil, release, err
		}

		return nil, release, nil
	}

	if err = validator.ValidateStruct((*T)(req)); err != nil {
		release()

		return nil, func() {}, err
	}

	return uploads, release, nil
}

func openUploads(headers []*multipart.FileHeader) ([]s3.Object, func(), error) {
	files := make([]multipart.File, 0, len(headers))
	release := func() {
		for _, file := range files {
			if err := file.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close uploaded file")
			}
		}
	}

	uploads := make([]s3.Object, 0, len(headers))

	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			release()

			return nil, func() {}, failure.BadRequest(fmt.Errorf("failed to open uploaded file: %w", err))
		}

		files = append(files, file)
		uploads = append(uploads, s3.Object{
			Name:        header.Filename,
			ContentType: header.Header.Get(constant.RequestHeaderContentType),
			Size:        header.Size,
			Body:        file,
		})
	}

	return uploads, release, nil
}
