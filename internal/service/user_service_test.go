package service_test

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/pkg/security"
	"Portfolio/internal/repository/repotest"
	"Portfolio/internal/service"
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ = Describe("UserService", func() {
	var (
		ctx     context.Context
		tokens  *security.TokenManager
		postSvc service.PostService
		svc     service.UserService
	)

	register := func(name, email string) *dto.UserDTO {
		out, err := svc.Register(ctx, &dto.RegisterDTO{Name: name, Email: email, Password: "secret1"})
		Expect(err).NotTo(HaveOccurred())
		return out
	}

	BeforeEach(func() {
		ctx = context.Background()
		users := repotest.NewUserRepo()
		posts := repotest.NewPostRepo()
		tokens = security.NewTokenManager("test-secret", "portfolio", 30*24*time.Hour, repotest.NewRevocationStore())
		postSvc = service.NewPostService(posts, repotest.NewCommentRepo())
		svc = service.NewUserService(users, posts, tokens, "Admin@Example.com")
	})

	Describe("Register and Login", func() {
		It("normalises email and rejects duplicates", func() {
			out := register("Ana", "  Ana@Example.com ")
			Expect(out.Email).To(Equal("ana@example.com"))
			Expect(out.Avatar).To(Equal("/avatar.png"))
			Expect(out.Role).To(Equal("Designer"))

			_, err := svc.Register(ctx, &dto.RegisterDTO{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
			Expect(err).To(MatchError(service.ErrUserExist))
		})

		It("requires a six character password", func() {
			_, err := svc.Register(ctx, &dto.RegisterDTO{Name: "Ana", Email: "ana@example.com", Password: "12345"})
			Expect(errors.Is(err, service.ErrParamInvalid)).To(BeTrue())
		})

		It("issues a token without admin role for regular users", func() {
			register("Ana", "ana@example.com")
			res, err := svc.Login(ctx, &dto.CredentialDTO{Email: "ANA@example.com", Password: "secret1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Roles).To(ConsistOf("user"))

			claims, err := tokens.ValidateToken(ctx, res.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Email).To(Equal("ana@example.com"))
			Expect(claims.HasRole("admin")).To(BeFalse())
		})

		It("rejects bad credentials with one message", func() {
			register("Ana", "ana@example.com")
			_, err := svc.Login(ctx, &dto.CredentialDTO{Email: "ana@example.com", Password: "wrong!"})
			Expect(err).To(MatchError(service.ErrInvalidCredentials))

			_, err = svc.Login(ctx, &dto.CredentialDTO{Email: "nobody@example.com", Password: "secret1"})
			Expect(err).To(MatchError(service.ErrInvalidCredentials))
		})

		It("revokes the token on logout", func() {
			register("Ana", "ana@example.com")
			res, err := svc.Login(ctx, &dto.CredentialDTO{Email: "ana@example.com", Password: "secret1"})
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.Logout(ctx, res.Token)).To(Succeed())
			_, err = tokens.ValidateToken(ctx, res.Token)
			Expect(err).To(MatchError(security.ErrTokenRevoked))

			Expect(svc.Logout(ctx, "garbage")).To(MatchError(service.UnauthorizedError))
		})
	})

	Describe("EnsureAdmin", func() {
		It("bootstraps the configured admin once and grants the admin role", func() {
			Expect(svc.EnsureAdmin(ctx, "Admin", "adminpass")).To(Succeed())
			Expect(svc.EnsureAdmin(ctx, "Admin", "other")).To(Succeed())

			res, err := svc.Login(ctx, &dto.CredentialDTO{Email: "admin@example.com", Password: "adminpass"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Roles).To(ContainElement("admin"))
		})

		It("fails without a password when an admin email is configured", func() {
			Expect(svc.EnsureAdmin(ctx, "Admin", "")).To(MatchError(service.ErrAdminPasswordMissing))
			_, err := svc.Login(ctx, &dto.CredentialDTO{Email: "admin@example.com", Password: "x"})
			Expect(err).To(MatchError(service.ErrInvalidCredentials))
		})

		It("is a no-op when no admin email is configured", func() {
			plain := service.NewUserService(repotest.NewUserRepo(), repotest.NewPostRepo(), tokens, "")
			Expect(plain.EnsureAdmin(ctx, "Admin", "")).To(Succeed())
		})

		It("refuses self-registration with the admin email in any case", func() {
			_ = svc.EnsureAdmin(ctx, "Admin", "")
			_, err := svc.Register(ctx, &dto.RegisterDTO{Name: "Mallory", Email: "ADMIN@example.com", Password: "secret1"})
			Expect(err).To(MatchError(service.ErrUserExist))

			_, err = svc.Login(ctx, &dto.CredentialDTO{Email: "admin@example.com", Password: "secret1"})
			Expect(err).To(MatchError(service.ErrInvalidCredentials))
		})
	})

	Describe("profiles", func() {
		It("updates only provided fields", func() {
			ana := register("Ana", "ana@example.com")
			about := "<b>Hello</b> there"
			out, err := svc.UpdateUserInfo(ctx, ana.ID, &dto.UpdateProfileDTO{About: &about})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.About).To(Equal("Hello there"))
			Expect(out.Name).To(Equal("Ana"))

			empty := " "
			_, err = svc.UpdateUserInfo(ctx, ana.ID, &dto.UpdateProfileDTO{Name: &empty})
			Expect(errors.Is(err, service.ErrParamInvalid)).To(BeTrue())
		})

		It("lists users without emails", func() {
			register("Ana", "ana@example.com")
			register("Bo", "bo@example.com")
			list, err := svc.ListUsers(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			for _, u := range list {
				Expect(u.Email).To(BeEmpty())
			}
		})

		It("shows approved posts and follow state", func() {
			ana := register("Ana", "ana@example.com")
			bo := register("Bo", "bo@example.com")

			p, err := postSvc.SubmitPost(ctx, ana.ID, &dto.SubmitPostDTO{Title: "t", Content: "c", Author: "Ana"})
			Expect(err).NotTo(HaveOccurred())
			_, err = postSvc.SubmitPost(ctx, ana.ID, &dto.SubmitPostDTO{Title: "hidden", Content: "c", Author: "Ana"})
			Expect(err).NotTo(HaveOccurred())
			_, err = postSvc.SetPostApproval(ctx, p.ID, true)
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.Follow(ctx, bo.ID, ana.ID)).To(Succeed())
			Expect(svc.Follow(ctx, bo.ID, ana.ID)).To(Succeed())

			profile, err := svc.GetProfile(ctx, bo.ID, ana.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(profile.Stats).To(Equal(dto.ProfileStatsDTO{Followers: 1, Following: 0, Posts: 1}))
			Expect(profile.Posts).To(HaveLen(1))
			Expect(profile.IsFollowing).To(BeTrue())
			Expect(profile.IsOwnProfile).To(BeFalse())

			own, err := svc.GetProfile(ctx, ana.ID, ana.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(own.IsOwnProfile).To(BeTrue())

			Expect(svc.Unfollow(ctx, bo.ID, ana.ID)).To(Succeed())
			profile, err = svc.GetProfile(ctx, "", ana.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(profile.Stats.Followers).To(BeZero())
			Expect(profile.IsFollowing).To(BeFalse())
		})

		It("guards follow targets", func() {
			ana := register("Ana", "ana@example.com")
			Expect(svc.Follow(ctx, ana.ID, ana.ID)).To(MatchError(service.ErrUserFollowSelf))
			Expect(svc.Follow(ctx, ana.ID, primitive.NewObjectID().Hex())).To(MatchError(service.ErrUserNotFound))
			Expect(svc.Follow(ctx, ana.ID, "bad")).To(MatchError(service.ErrInvalidID))
			Expect(svc.Follow(ctx, "", ana.ID)).To(MatchError(service.UnauthorizedError))

			_, err := svc.GetProfile(ctx, "", primitive.NewObjectID().Hex())
			Expect(err).To(MatchError(service.ErrUserNotFound))
		})
	})
})
