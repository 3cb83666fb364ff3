package content

// Fallback content served whenever the store has nothing usable for a
// collection. The accessors return fresh values so callers cannot alter the
// defaults.

func strPtr(s string) *string { return &s }

// FallbackProfile returns the default about-me record.
func FallbackProfile() Profile {
	return Profile{
		ID:   1,
		Name: "Inshal Amir",
		Description: "Passionate AI enthusiast with expertise in machine learning, deep learning, and full-stack development. " +
			"I specialize in building intelligent systems that solve real-world problems.",
		Studies:        strPtr("Bachelor of Science in Computer Science - Specialization in Artificial Intelligence"),
		WorkExperience: strPtr("Senior AI Engineer at Tech Innovation Labs (2022-Present)\nFull Stack Developer at Digital Solutions Inc (2020-2021)"),
		OtherDetails:   strPtr("Available Worldwide"),
	}
}

// FallbackSkills returns the default skills list, ascending by id.
func FallbackSkills() []Skill {
	return []Skill{
		{ID: 1, Name: "Machine Learning", Level: strPtr("95"), Description: strPtr("TensorFlow, PyTorch, Scikit-learn")},
		{ID: 2, Name: "Deep Learning", Level: strPtr("90"), Description: strPtr("Neural Networks, CNNs, RNNs, Transformers")},
		{ID: 3, Name: "Natural Language Processing", Level: strPtr("88"), Description: strPtr("BERT, GPT, Sentiment Analysis")},
		{ID: 4, Name: "React", Level: strPtr("92"), Description: strPtr("React.js, Next.js, Redux")},
		{ID: 5, Name: "Python", Level: strPtr("95"), Description: strPtr("FastAPI, Django, Data Science")},
		{ID: 6, Name: "Node.js", Level: strPtr("85"), Description: strPtr("Express, REST APIs, GraphQL")},
		{ID: 7, Name: "Cloud Services", Level: strPtr("80"), Description: strPtr("AWS, GCP, Azure, Docker")},
		{ID: 8, Name: "Computer Vision", Level: strPtr("85"), Description: strPtr("OpenCV, Image Processing, Object Detection")},
	}
}

// FallbackProjects returns the default projects list.
func FallbackProjects() []Project {
	return []Project{
		{
			ID:               1,
			Name:             "AI Chat Assistant",
			Description:      "An intelligent conversational AI powered by GPT that can understand context and provide helpful responses.",
			TechnologiesUsed: strPtr("Python, OpenAI, FastAPI, React"),
			Link:             strPtr("#"),
		},
		{
			ID:               2,
			Name:             "Smart Image Analyzer",
			Description:      "Computer vision application that analyzes images to detect objects, faces, and extract text.",
			TechnologiesUsed: strPtr("TensorFlow, OpenCV, Python, Flask"),
			Link:             strPtr("#"),
		},
		{
			ID:               3,
			Name:             "Predictive Analytics Dashboard",
			Description:      "Real-time analytics platform with ML-powered predictions for business intelligence.",
			TechnologiesUsed: strPtr("React, D3.js, Python, PostgreSQL"),
			Link:             strPtr("#"),
		},
	}
}
