package storage

import (
	"encoding/json"
	"time"

	"github.com/cuongbtq/tunel-admin/internal/api/domain"
)

func mustTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedJobs returns the jobs the admin API boots with
func SeedJobs() []domain.Job {
	return []domain.Job{
		{
			ID:           "1",
			Title:        "Senior React Developer",
			Company:      "Spotify",
			CompanyID:    "1",
			Location:     "Stockholm",
			Country:      "Sweden",
			Type:         domain.JobTypeFullTime,
			SalaryMin:    70000,
			SalaryMax:    95000,
			Currency:     "EUR",
			Status:       domain.JobStatusActive,
			Applications: 23,
			Views:        156,
			CreatedAt:    mustTime("2024-01-15T10:00:00Z"),
			UpdatedAt:    mustTime("2024-01-15T10:00:00Z"),
			Technologies: []string{"React", "TypeScript", "Node.js", "GraphQL"},
			Description:  "Join our team building next-generation music streaming experiences. We offer a remote-first culture with visa sponsorship available.",
			Requirements: []string{
				"5+ years React experience",
				"TypeScript proficiency",
				"Experience with state management",
				"API integration skills",
			},
			Benefits: []string{"Visa sponsorship", "Remote work", "Health insurance", "Stock options"},
		},
		{
			ID:           "2",
			Title:        "DevOps Engineer",
			Company:      "Adyen",
			CompanyID:    "2",
			Location:     "Amsterdam",
			Country:      "Netherlands",
			Type:         domain.JobTypeFullTime,
			SalaryMin:    65000,
			SalaryMax:    85000,
			Currency:     "EUR",
			Status:       domain.JobStatusActive,
			Applications: 15,
			Views:        89,
			CreatedAt:    mustTime("2024-01-10T14:30:00Z"),
			UpdatedAt:    mustTime("2024-01-10T14:30:00Z"),
			Technologies: []string{"AWS", "Kubernetes", "Docker", "Terraform"},
			Description:  "Scale payment infrastructure for global merchants. Work with cutting-edge cloud technologies and microservices.",
			Requirements: []string{
				"3+ years DevOps experience",
				"AWS/Azure expertise",
				"Kubernetes knowledge",
				"CI/CD pipeline experience",
			},
			Benefits: []string{"Visa sponsorship", "Learning budget", "Flexible hours", "Relocation support"},
		},
	}
}

// SeedCompanies returns the companies the admin API boots with
func SeedCompanies() []domain.Company {
	return []domain.Company{
		{
			ID:          "1",
			Name:        "Spotify",
			Slug:        "spotify",
			Logo:        "/logos/spotify.png",
			Website:     "https://spotify.com",
			Country:     "Sweden",
			City:        "Stockholm",
			Employees:   "6000+",
			FoundedYear: 2006,
			Industry:    "Music Streaming",
			Description: "The world's most popular audio streaming subscription service with millions of tracks and podcasts.",
			Culture:     "Innovative, collaborative, and music-focused environment with strong emphasis on creativity.",
			Benefits: []string{
				"Visa sponsorship for international talent",
				"Flexible working arrangements",
				"Comprehensive health insurance",
				"Stock options and equity participation",
				"Learning and development budget",
				"Wellness programs and mental health support",
			},
			TechStack:         []string{"React", "TypeScript", "Node.js", "Python", "Kafka", "Kubernetes"},
			ActiveJobs:        12,
			TotalApplications: 234,
			Status:            domain.CompanyStatusActive,
			Featured:          true,
			CreatedAt:         mustTime("2024-01-01T00:00:00Z"),
			UpdatedAt:         mustTime("2024-01-15T10:00:00Z"),
		},
		{
			ID:          "2",
			Name:        "Adyen",
			Slug:        "adyen",
			Logo:        "/logos/adyen.png",
			Website:     "https://adyen.com",
			Country:     "Netherlands",
			City:        "Amsterdam",
			Employees:   "3000+",
			FoundedYear: 2006,
			Industry:    "Financial Technology",
			Description: "The payments platform of choice for many of the world's leading companies, providing modern payment solutions.",
			Culture:     "Fast-paced, international environment focused on innovation and technical excellence.",
			Benefits: []string{
				"Full visa sponsorship and relocation support",
				"Competitive salary and bonus structure",
				"International career opportunities",
				"Learning budget for professional development",
				"Health and wellness programs",
				"Flexible working policies",
			},
			TechStack:         []string{"Java", "Python", "AWS", "Kubernetes", "Docker", "Kafka"},
			ActiveJobs:        8,
			TotalApplications: 156,
			Status:            domain.CompanyStatusActive,
			Featured:          true,
			CreatedAt:         mustTime("2024-01-02T00:00:00Z"),
			UpdatedAt:         mustTime("2024-01-10T14:30:00Z"),
		},
		{
			ID:          "3",
			Name:        "Klarna",
			Slug:        "klarna",
			Logo:        "/logos/klarna.png",
			Website:     "https://klarna.com",
			Country:     "Sweden",
			City:        "Stockholm",
			Employees:   "4000+",
			FoundedYear: 2005,
			Industry:    "Financial Technology",
			Description: "Leading global retail bank, payments and shopping service provider.",
			Culture:     "Bold, diverse, and inclusive culture with focus on innovation and customer experience.",
			Benefits: []string{
				"Visa sponsorship available",
				"Flexible working arrangements",
				"Parental leave and family support",
				"Health and wellness benefits",
				"Professional development opportunities",
				"Equity participation",
			},
			TechStack:         []string{"Python", "React", "PostgreSQL", "AWS", "Docker", "Microservices"},
			ActiveJobs:        6,
			TotalApplications: 98,
			Status:            domain.CompanyStatusActive,
			Featured:          false,
			CreatedAt:         mustTime("2024-01-03T00:00:00Z"),
			UpdatedAt:         mustTime("2024-01-08T09:15:00Z"),
		},
	}
}

const seedHomepage = `{
  "hero": {
    "title": "Find Your Dream Job in Europe",
    "subtitle": "Connect with top European companies offering visa sponsorship for Turkish developers",
    "searchPlaceholder": "Search for jobs, companies, or skills...",
    "backgroundImage": "/images/hero-bg.jpg"
  },
  "stats": {
    "jobs": {"label": "Active Jobs", "value": 500},
    "companies": {"label": "Partner Companies", "value": 50},
    "countries": {"label": "European Countries", "value": 15}
  },
  "features": {
    "visaOnly": {
      "title": "Visa Sponsorship Guaranteed",
      "description": "Every job posting guarantees visa sponsorship for Turkish citizens seeking European opportunities"
    },
    "smartFiltering": {
      "title": "AI-Powered Job Matching",
      "description": "Find jobs that perfectly match your skills and career goals with our intelligent recommendation system"
    },
    "turkishProfessionals": {
      "title": "Turkish Developer Community",
      "description": "Connect with other Turkish developers who have successfully relocated to Europe and share experiences"
    }
  },
  "successStories": [
    {
      "id": "1",
      "name": "Mehmet Akın",
      "role": "Frontend Developer",
      "company": "Spotify",
      "location": "Berlin, Germany",
      "salary": "€65,000/year",
      "story": "Found my dream job at a Berlin startup through Tunel. The visa process was seamless and the company was incredibly supportive.",
      "image": "/images/testimonial-1.jpg"
    },
    {
      "id": "2",
      "name": "Ayşe Yılmaz",
      "role": "Full Stack Developer",
      "company": "Adyen",
      "location": "Amsterdam, Netherlands",
      "salary": "€70,000/year",
      "story": "Relocated to Amsterdam with my family. The job market insights and company culture information helped me choose the perfect fit.",
      "image": "/images/testimonial-2.jpg"
    }
  ],
  "companiesShowcase": [
    {"name": "Spotify", "color": "blue-600", "logo": "/logos/spotify.png"},
    {"name": "Adyen", "color": "green-600", "logo": "/logos/adyen.png"},
    {"name": "Klarna", "color": "purple-600", "logo": "/logos/klarna.png"},
    {"name": "Delivery Hero", "color": "orange-600", "logo": "/logos/delivery-hero.png"},
    {"name": "Takeaway", "color": "red-600", "logo": "/logos/takeaway.png"},
    {"name": "Bunq", "color": "indigo-600", "logo": "/logos/bunq.png"}
  ]
}`

// SeedHomepage returns the homepage content the admin API boots with
func SeedHomepage() Homepage {
	var h Homepage
	if err := json.Unmarshal([]byte(seedHomepage), &h); err != nil {
		panic(err)
	}
	return h
}
