package service_test

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/repository/repotest"
	"Portfolio/internal/service"
	"context"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ = Describe("CommentService", func() {
	var (
		ctx      context.Context
		postSvc  service.PostService
		svc      service.CommentService
		approved *dto.PostDTO
		pending  *dto.PostDTO
	)

	BeforeEach(func() {
		ctx = context.Background()
		posts := repotest.NewPostRepo()
		comments := repotest.NewCommentRepo()
		postSvc = service.NewPostService(posts, comments)
		svc = service.NewCommentService(comments, posts)

		var err error
		approved, err = postSvc.SubmitPost(ctx, "", &dto.SubmitPostDTO{Title: "a", Content: "c", Author: "x"})
		Expect(err).NotTo(HaveOccurred())
		_, err = postSvc.SetPostApproval(ctx, approved.ID, true)
		Expect(err).NotTo(HaveOccurred())

		pending, err = postSvc.SubmitPost(ctx, "", &dto.SubmitPostDTO{Title: "b", Content: "c", Author: "x"})
		Expect(err).NotTo(HaveOccurred())
	})

	It("threads replies under their parent", func() {
		root, err := svc.CreateComment(ctx, "", approved.ID, &dto.CreateCommentDTO{Content: "first"})
		Expect(err).NotTo(HaveOccurred())
		Expect(root.Author).To(Equal("Anonymous"))

		_, err = svc.CreateComment(ctx, "", approved.ID, &dto.CreateCommentDTO{Content: "second", Author: "Bo"})
		Expect(err).NotTo(HaveOccurred())

		reply, err := svc.CreateComment(ctx, "", approved.ID, &dto.CreateCommentDTO{Content: "re", ParentID: root.ID})
		Expect(err).NotTo(HaveOccurred())
		Expect(reply.ParentID).To(Equal(root.ID))

		list, err := svc.ListComments(ctx, approved.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(2))
		Expect(list[0].Content).To(Equal("first"))
		Expect(list[0].Replies).To(HaveLen(1))
		Expect(list[0].Replies[0].Content).To(Equal("re"))
		Expect(list[1].Author).To(Equal("Bo"))
	})

	It("allows only one level of replies", func() {
		root, err := svc.CreateComment(ctx, "", approved.ID, &dto.CreateCommentDTO{Content: "root"})
		Expect(err).NotTo(HaveOccurred())
		reply, err := svc.CreateComment(ctx, "", approved.ID, &dto.CreateCommentDTO{Content: "r", ParentID: root.ID})
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.CreateComment(ctx, "", approved.ID, &dto.CreateCommentDTO{Content: "rr", ParentID: reply.ID})
		Expect(err).To(MatchError(service.ErrCommentParent))

		_, err = svc.CreateComment(ctx, "", approved.ID, &dto.CreateCommentDTO{Content: "x", ParentID: primitive.NewObjectID().Hex()})
		Expect(err).To(MatchError(service.ErrCommentParent))
	})

	It("hides unapproved posts", func() {
		_, err := svc.CreateComment(ctx, "", pending.ID, &dto.CreateCommentDTO{Content: "hi"})
		Expect(err).To(MatchError(service.ErrPostNotFound))

		_, err = svc.ListComments(ctx, pending.ID)
		Expect(err).To(MatchError(service.ErrPostNotFound))
	})

	It("validates content", func() {
		_, err := svc.CreateComment(ctx, "", approved.ID, &dto.CreateCommentDTO{Content: "  "})
		Expect(errors.Is(err, service.ErrParamInvalid)).To(BeTrue())

		_, err = svc.CreateComment(ctx, "", approved.ID, &dto.CreateCommentDTO{Content: strings.Repeat("c", 1001)})
		Expect(errors.Is(err, service.ErrParamInvalid)).To(BeTrue())
	})
})
