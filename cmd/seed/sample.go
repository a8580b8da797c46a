package main

import "Portfolio/internal/model"

// 密码均为 "password"
const samplePasswordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

var sampleUsers = []model.User{
	{
		Name:     "Sarah Johnson",
		Email:    "sarah@example.com",
		Avatar:   "/me-removebg-preview.png",
		About:    "UI/UX Designer passionate about creating beautiful and functional digital experiences. Love working with startups and helping them bring their ideas to life.",
		Location: "San Francisco, CA",
		Website:  "sarahjohnson.design",
		Role:     "UI/UX Designer",
		Verified: true,
	},
	{
		Name:     "Mike Chen",
		Email:    "mike@example.com",
		Avatar:   "/me2-removebg-preview.png",
		About:    "Frontend Developer and designer. Building the future of web applications with React and modern design principles.",
		Location: "New York, NY",
		Website:  "mikechen.dev",
		Role:     "Frontend Developer",
	},
	{
		Name:     "Emma Wilson",
		Email:    "emma@example.com",
		Avatar:   "/me3-removebg-preview.png",
		About:    "Product Designer at a leading tech company. Focused on user research and creating intuitive interfaces that users love.",
		Location: "Seattle, WA",
		Website:  "emmawilson.com",
		Role:     "Product Designer",
		Verified: true,
	},
}

type samplePost struct {
	Title   string
	Content string
	// 作者在 sampleUsers 中的下标，-1 表示匿名
	Owner  int
	Author string
}

var samplePosts = []samplePost{
	{"Designing Better User Onboarding", "User onboarding is crucial for product success. Here are some key principles I follow when designing onboarding flows that actually work.", 0, ""},
	{"The Future of Web Development", "Exploring the latest trends in web development and how they're shaping the future of digital experiences.", 1, ""},
	{"Building Inclusive Design Systems", "Creating design systems that work for everyone, regardless of ability or background. Accessibility should be built in, not bolted on.", 2, ""},
	{"Mobile-First Design Principles", "Why mobile-first design is more important than ever and how to implement it effectively in your design process.", 0, ""},
	{"React Performance Optimization", "Tips and tricks for optimizing React applications for better performance and user experience.", 1, ""},
	{"Welcome to Our Community!", "Welcome to our community platform! This is your first post. Feel free to share your thoughts, ideas, and connect with other members.", -1, "Admin"},
	{"Bitcoin Market Update", "Bitcoin has seen significant volatility in recent days. Market analysts suggest this could be due to various factors including regulatory news and institutional adoption. Stay tuned for more updates.", -1, "CryptoAnalyst"},
	{"Community Guidelines", "Please remember to be respectful and constructive in your posts. Our community thrives on positive interactions and meaningful discussions. Thank you for being part of our community!", -1, "Moderator"},
}
