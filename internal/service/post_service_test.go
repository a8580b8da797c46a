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

var _ = Describe("PostService", func() {
	var (
		ctx      context.Context
		posts    *repotest.PostRepo
		comments *repotest.CommentRepo
		svc      service.PostService
	)

	submit := func(title string) *dto.PostDTO {
		out, err := svc.SubmitPost(ctx, "", &dto.SubmitPostDTO{Title: title, Content: "body", Author: "Ana"})
		Expect(err).NotTo(HaveOccurred())
		return out
	}

	BeforeEach(func() {
		ctx = context.Background()
		posts = repotest.NewPostRepo()
		comments = repotest.NewCommentRepo()
		svc = service.NewPostService(posts, comments)
	})

	Describe("SubmitPost", func() {
		It("stores a pending post that is not publicly visible", func() {
			out := submit("Hello")
			Expect(out.Approved).To(BeFalse())
			Expect(out.ID).NotTo(BeEmpty())

			page, err := svc.ListApprovedPosts(ctx, 1, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(BeEmpty())
			Expect(page.Pagination.Total).To(BeZero())

			_, err = svc.GetPost(ctx, out.ID)
			Expect(err).To(MatchError(service.ErrPostNotFound))
		})

		It("accepts a 200 character title and rejects 201", func() {
			_, err := svc.SubmitPost(ctx, "", &dto.SubmitPostDTO{
				Title: strings.Repeat("a", 200), Content: "c", Author: "a",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.SubmitPost(ctx, "", &dto.SubmitPostDTO{
				Title: strings.Repeat("a", 201), Content: "c", Author: "a",
			})
			Expect(errors.Is(err, service.ErrParamInvalid)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("title"))
			Expect(posts.Len()).To(Equal(1))
		})

		It("rejects over-long content and author", func() {
			_, err := svc.SubmitPost(ctx, "", &dto.SubmitPostDTO{
				Title: "t", Content: strings.Repeat("c", 2001), Author: "a",
			})
			Expect(errors.Is(err, service.ErrParamInvalid)).To(BeTrue())

			_, err = svc.SubmitPost(ctx, "", &dto.SubmitPostDTO{
				Title: "t", Content: "c", Author: strings.Repeat("a", 101),
			})
			Expect(errors.Is(err, service.ErrParamInvalid)).To(BeTrue())
			Expect(posts.Len()).To(BeZero())
		})

		It("rejects fields that are blank once tags are stripped", func() {
			_, err := svc.SubmitPost(ctx, "", &dto.SubmitPostDTO{
				Title: "<b></b>  ", Content: "c", Author: "a",
			})
			Expect(errors.Is(err, service.ErrParamInvalid)).To(BeTrue())
		})

		It("strips markup and records the submitting user", func() {
			uid := primitive.NewObjectID()
			out, err := svc.SubmitPost(ctx, uid.Hex(), &dto.SubmitPostDTO{
				Title: "<i>Hi</i>", Content: "x <script>bad()</script>", Author: "Ana",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Title).To(Equal("Hi"))
			Expect(out.Content).To(Equal("x"))
			Expect(out.UserID).To(Equal(uid.Hex()))
		})

		It("creates distinct records for identical submissions", func() {
			a := submit("Same")
			b := submit("Same")
			Expect(a.ID).NotTo(Equal(b.ID))
			Expect(posts.Len()).To(Equal(2))
		})
	})

	Describe("moderation", func() {
		It("publishes approved posts newest first regardless of approval order", func() {
			first := submit("first")
			second := submit("second")
			third := submit("third")

			_, err := svc.SetPostApproval(ctx, first.ID, true)
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.SetPostApproval(ctx, third.ID, true)
			Expect(err).NotTo(HaveOccurred())

			page, err := svc.ListApprovedPosts(ctx, 1, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(2))
			Expect(page.Items[0].ID).To(Equal(third.ID))
			Expect(page.Items[1].ID).To(Equal(first.ID))

			got, err := svc.GetPost(ctx, third.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ContentHTML).To(ContainSubstring("<p>body</p>"))

			_, err = svc.GetPost(ctx, second.ID)
			Expect(err).To(MatchError(service.ErrPostNotFound))
		})

		It("can withdraw an approval", func() {
			p := submit("toggle")
			_, err := svc.SetPostApproval(ctx, p.ID, true)
			Expect(err).NotTo(HaveOccurred())

			out, err := svc.SetPostApproval(ctx, p.ID, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Approved).To(BeFalse())

			page, err := svc.ListApprovedPosts(ctx, 1, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(BeEmpty())
		})

		It("reports missing and malformed ids", func() {
			_, err := svc.SetPostApproval(ctx, primitive.NewObjectID().Hex(), true)
			Expect(err).To(MatchError(service.ErrPostNotFound))

			_, err = svc.SetPostApproval(ctx, "not-an-id", true)
			Expect(err).To(MatchError(service.ErrInvalidID))

			Expect(svc.DeletePost(ctx, primitive.NewObjectID().Hex())).To(MatchError(service.ErrPostNotFound))
		})

		It("deletes a post together with its comments", func() {
			p := submit("doomed")
			_, err := svc.SetPostApproval(ctx, p.ID, true)
			Expect(err).NotTo(HaveOccurred())

			commentSvc := service.NewCommentService(comments, posts)
			_, err = commentSvc.CreateComment(ctx, "", p.ID, &dto.CreateCommentDTO{Content: "nice"})
			Expect(err).NotTo(HaveOccurred())
			Expect(comments.Len()).To(Equal(1))

			Expect(svc.DeletePost(ctx, p.ID)).To(Succeed())
			Expect(posts.Len()).To(BeZero())
			Expect(comments.Len()).To(BeZero())
		})

		It("approves every pending post at once", func() {
			submit("a")
			submit("b")
			n, err := svc.ApproveAllPending(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(2)))

			all, err := svc.ListAllPosts(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
			for _, p := range all {
				Expect(p.Approved).To(BeTrue())
			}
		})
	})

	Describe("ListApprovedPosts", func() {
		BeforeEach(func() {
			for i := 0; i < 7; i++ {
				submit("post")
			}
			_, err := svc.ApproveAllPending(ctx)
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns the first page with more to come", func() {
			page, err := svc.ListApprovedPosts(ctx, 1, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(5))
			Expect(page.Pagination).To(Equal(dto.PaginationDTO{Page: 1, Limit: 5, Total: 7, HasMore: true}))
		})

		It("returns the remainder on the last page", func() {
			page, err := svc.ListApprovedPosts(ctx, 2, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(2))
			Expect(page.Pagination.HasMore).To(BeFalse())
		})

		It("returns nothing past the end", func() {
			page, err := svc.ListApprovedPosts(ctx, 3, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(BeEmpty())
			Expect(page.Pagination.HasMore).To(BeFalse())
		})

		It("clamps out-of-range parameters", func() {
			page, err := svc.ListApprovedPosts(ctx, 0, 500)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Pagination.Page).To(Equal(1))
			Expect(page.Pagination.Limit).To(Equal(50))
			Expect(page.Items).To(HaveLen(7))
		})
	})
})
