package service_test

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/pkg/minio"
	"Portfolio/internal/repository/repotest"
	"Portfolio/internal/service"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ftypPayload 构造只含 ftyp 盒的 ISO-BMFF 头
func ftypPayload(brand string) string {
	raw := append([]byte{0, 0, 0, 16}, []byte("ftyp"+brand)...)
	raw = append(raw, 0, 0, 0, 0)
	return base64.StdEncoding.EncodeToString(raw)
}

func pngPayload(w, h int) string {
	var buf bytes.Buffer
	Expect(png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)))).To(Succeed())
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

var _ = Describe("GalleryService", func() {
	var (
		ctx     context.Context
		images  *repotest.GalleryRepo
		objects *repotest.ObjectStore
		svc     service.GalleryService
	)

	upload := func(name string) *dto.UploadResultDTO {
		out, err := svc.UploadImage(ctx, "", "", &dto.UploadImageDTO{
			Image:       "data:image/png;base64," + pngPayload(4, 3),
			FileName:    name,
			ContentType: "image/png",
		})
		Expect(err).NotTo(HaveOccurred())
		return out
	}

	BeforeEach(func() {
		ctx = context.Background()
		images = repotest.NewGalleryRepo()
		objects = repotest.NewObjectStore()
		svc = service.NewGalleryService(images, objects)
	})

	Describe("UploadImage", func() {
		It("stores the blob and a pending record behind the proxy url", func() {
			out := upload("my photo.png")
			Expect(out.Status).To(Equal("pending"))
			Expect(out.Key).To(HavePrefix(minio.GalleryPrefix))
			Expect(out.Key).To(HaveSuffix("-my_photo.png"))
			Expect(out.URL).To(Equal(minio.ProxyURL(out.Key)))
			Expect(objects.Has(out.Key)).To(BeTrue())

			pending, err := svc.ListPendingImages(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(pending).To(HaveLen(1))
			Expect(pending[0].UploaderEmail).To(Equal("Anonymous"))
			Expect(pending[0].Width).To(Equal(4))
			Expect(pending[0].Height).To(Equal(3))

			public, err := svc.ListApprovedImages(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(public).To(BeEmpty())
		})

		It("records the uploader when known", func() {
			uid := primitive.NewObjectID()
			_, err := svc.UploadImage(ctx, uid.Hex(), "ana@example.com", &dto.UploadImageDTO{
				Image: pngPayload(1, 1), FileName: "a.png",
			})
			Expect(err).NotTo(HaveOccurred())

			pending, err := svc.ListPendingImages(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(pending[0].UploaderEmail).To(Equal("ana@example.com"))
			Expect(pending[0].ContentType).To(Equal("image/jpeg"))
		})

		It("rejects non-image content types and payloads", func() {
			_, err := svc.UploadImage(ctx, "", "", &dto.UploadImageDTO{
				Image: pngPayload(1, 1), FileName: "a.txt", ContentType: "text/plain",
			})
			Expect(err).To(MatchError(service.ErrFileNotSupported))

			_, err = svc.UploadImage(ctx, "", "", &dto.UploadImageDTO{
				Image:    base64.StdEncoding.EncodeToString([]byte("just some text")),
				FileName: "a.png",
			})
			Expect(err).To(MatchError(service.ErrFileNotSupported))
			Expect(images.Len()).To(BeZero())
		})

		It("accepts modern image formats the decoder cannot read", func() {
			cases := []struct{ brand, contentType string }{
				{"heic", "image/heic"},
				{"mif1", "image/heif"},
				{"avif", "image/avif"},
			}
			for _, tc := range cases {
				out, err := svc.UploadImage(ctx, "", "", &dto.UploadImageDTO{
					Image: ftypPayload(tc.brand), FileName: "photo." + tc.brand, ContentType: tc.contentType,
				})
				Expect(err).NotTo(HaveOccurred(), tc.contentType)
				Expect(objects.Has(out.Key)).To(BeTrue())
			}

			pending, err := svc.ListPendingImages(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(pending).To(HaveLen(3))
			Expect(pending[0].Width).To(BeZero())
		})

		It("rejects SVG by name", func() {
			svg := base64.StdEncoding.EncodeToString([]byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"><script>alert(1)</script></svg>`))
			_, err := svc.UploadImage(ctx, "", "", &dto.UploadImageDTO{
				Image: svg, FileName: "logo.svg", ContentType: "image/svg+xml",
			})
			Expect(err).To(MatchError(service.ErrSVGNotSupported))

			_, err = svc.UploadImage(ctx, "", "", &dto.UploadImageDTO{
				Image: svg, FileName: "logo.png", ContentType: "image/png",
			})
			Expect(err).To(HaveOccurred())
			Expect(images.Len()).To(BeZero())
		})

		It("requires the image and file name", func() {
			_, err := svc.UploadImage(ctx, "", "", &dto.UploadImageDTO{FileName: "a.png"})
			Expect(errors.Is(err, service.ErrParamInvalid)).To(BeTrue())

			_, err = svc.UploadImage(ctx, "", "", &dto.UploadImageDTO{Image: pngPayload(1, 1)})
			Expect(errors.Is(err, service.ErrParamInvalid)).To(BeTrue())
		})

		It("enforces the 10 MiB cap", func() {
			big := make([]byte, 10<<20+1)
			copy(big, []byte("\x89PNG\r\n\x1a\n"))
			_, err := svc.UploadImage(ctx, "", "", &dto.UploadImageDTO{
				Image: base64.StdEncoding.EncodeToString(big), FileName: "big.png",
			})
			Expect(err).To(MatchError(service.ErrFileTooLarge))
			Expect(images.Len()).To(BeZero())
		})
	})

	Describe("moderation", func() {
		It("publishes an approved image", func() {
			out := upload("a.png")
			approved, err := svc.ApproveImage(ctx, out.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(approved.Status).To(Equal("approved"))

			public, err := svc.ListApprovedImages(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(public).To(HaveLen(1))
			Expect(public[0].Key).To(Equal(out.Key))

			pending, err := svc.ListPendingImages(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(pending).To(BeEmpty())
		})

		It("removes both blob and record on deny", func() {
			out := upload("a.png")
			Expect(svc.DenyImage(ctx, out.ID)).To(Succeed())
			Expect(images.Len()).To(BeZero())
			Expect(objects.Has(out.Key)).To(BeFalse())
		})

		It("still removes the record when the blob delete fails", func() {
			out := upload("a.png")
			objects.DeleteErr = errors.New("storage down")

			Expect(svc.DenyImage(ctx, out.ID)).To(Succeed())
			Expect(images.Len()).To(BeZero())
			Expect(objects.Has(out.Key)).To(BeTrue())
		})

		It("reports missing images", func() {
			missing := primitive.NewObjectID().Hex()
			_, err := svc.ApproveImage(ctx, missing)
			Expect(err).To(MatchError(service.ErrImageNotFound))
			Expect(svc.DenyImage(ctx, missing)).To(MatchError(service.ErrImageNotFound))
			Expect(svc.DenyImage(ctx, "zzz")).To(MatchError(service.ErrInvalidID))
		})
	})

	Describe("GetImage", func() {
		It("streams stored objects", func() {
			out := upload("a.png")
			obj, err := svc.GetImage(ctx, out.Key)
			Expect(err).NotTo(HaveOccurred())
			defer obj.Body.Close()
			Expect(obj.ContentType).To(Equal("image/png"))
			data, err := io.ReadAll(obj.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(int64(len(data))).To(Equal(obj.Size))
		})

		It("guards the key", func() {
			_, err := svc.GetImage(ctx, "")
			Expect(err).To(MatchError(service.ErrImageKeyMissing))

			_, err = svc.GetImage(ctx, "private/secret.png")
			Expect(err).To(MatchError(service.ErrImageKeyForbidden))

			_, err = svc.GetImage(ctx, minio.GalleryPrefix+strings.Repeat("x", 4))
			Expect(err).To(MatchError(service.ErrImageNotFound))
		})
	})
})
