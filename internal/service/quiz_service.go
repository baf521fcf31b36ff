package service

import (
	"errors"
	"sync"
	"time"

	"pathway/internal/models"
	"pathway/internal/repository"
)

var (
	ErrInvalidSequence = errors.New("answer out of sequence")
	ErrUnknownCategory = errors.New("unknown quiz category")
	ErrUnknownTopic    = errors.New("unknown resource topic")
)

// questionCount is the fixed length of every quiz run
const questionCount = 3

// Question is a single quiz prompt with its labelled choices
type Question struct {
	Index   int
	Text    string
	Choices map[string]string
}

// QuizResult is returned after the final answer of a run
type QuizResult struct {
	Category       string
	Classification models.Classification
	Resources      []string
}

// SubmitOutcome carries either the next prompt or the final result
type SubmitOutcome struct {
	Next   *Question
	Result *QuizResult
}

// outcomeMapping drives classification: the first answer selects the
// language level and institution, the second the profession. Unmapped
// choices fall through to the default row. The third answer is recorded
// for history only and deliberately takes no part in the outcome.
type outcomeMapping struct {
	languageLevels    map[string][2]string // choice -> {level, institution}
	defaultLevel      [2]string
	professions       map[string]string
	defaultProfession string
}

var classificationTable = outcomeMapping{
	languageLevels: map[string][2]string{
		"a": {"Advanced", "Top-tier or international universities"},
		"b": {"Intermediate", "National universities"},
		"c": {"Beginner", "Local universities with preparatory programs"},
	},
	defaultLevel: [2]string{"Beginner (needs development)", "Preparatory programs recommended"},
	professions: map[string]string{
		"a": "Engineering / Software",
		"b": "Design / Arts",
		"c": "Social Sciences / Law",
	},
	defaultProfession: "Physical Education / Athletics",
}

var quizQuestions = map[string][]Question{
	"career": {
		{Index: 1, Text: "What is your English level?", Choices: map[string]string{
			"a": "I speak English very well",
			"b": "I am at an intermediate level",
			"c": "I am at a beginner level",
			"d": "I don't know any English",
		}},
		{Index: 2, Text: "Which area are you strongest in?", Choices: map[string]string{
			"a": "Mathematics",
			"b": "Art / Design",
			"c": "Social Sciences",
			"d": "Sports",
		}},
		{Index: 3, Text: "What is your career goal?", Choices: map[string]string{
			"a": "I want to be an academic",
			"b": "I want to work at a company",
			"c": "I want to start my own business",
			"d": "I want to be an athlete",
		}},
	},
	"interest": {
		{Index: 1, Text: "How comfortable are you learning in English?", Choices: map[string]string{
			"a": "Very comfortable",
			"b": "Somewhat comfortable",
			"c": "I prefer my native language",
			"d": "Not comfortable at all",
		}},
		{Index: 2, Text: "Which subject do you enjoy most?", Choices: map[string]string{
			"a": "Mathematics",
			"b": "Art / Design",
			"c": "Social Sciences",
			"d": "Sports",
		}},
		{Index: 3, Text: "How do you picture your working life?", Choices: map[string]string{
			"a": "Research and teaching",
			"b": "A corporate career",
			"c": "Running my own venture",
			"d": "Professional sports",
		}},
	},
}

var resourceCatalog = map[string][]string{
	"software":         {"https://www.freecodecamp.org", "https://docs.python.org/3/"},
	"datascience":      {"https://www.kaggle.com", "https://scikit-learn.org"},
	"marketing":        {"https://moz.com/learn/seo", "https://www.hubspot.com/resources"},
	"design":           {"https://www.figma.com/resources/learn-design/", "https://www.behance.net"},
	"entrepreneurship": {"https://www.ycombinator.com/library", "https://hbr.org"},
}

var careerAdvice = map[string]string{
	"software":         "Start with languages like Python and JavaScript to become a software developer.",
	"datascience":      "Learn statistics, machine learning and the Python data libraries (pandas, scikit-learn).",
	"marketing":        "SEO, social media management and ad analytics are the core of a digital marketing career.",
	"design":           "Master Figma, Photoshop and user experience principles to work as a UX/UI designer.",
	"entrepreneurship": "Develop your business idea, write a plan and look for investment or mentor support.",
}

// QuizService walks each user through a fixed three-question run per
// category and classifies them on completion. Progress for a
// (user, category) pair is reset after the third answer.
type QuizService struct {
	auth       *AuthService
	users      *repository.UserRepository
	engagement *EngagementService

	mu       sync.Mutex
	progress map[string]map[string][]models.Answer
}

// NewQuizService creates a new quiz service
func NewQuizService(auth *AuthService, users *repository.UserRepository, engagement *EngagementService) *QuizService {
	return &QuizService{
		auth:       auth,
		users:      users,
		engagement: engagement,
		progress:   make(map[string]map[string][]models.Answer),
	}
}

// Categories lists the supported quiz categories
func (s *QuizService) Categories() []string {
	return []string{"career", "interest"}
}

// FirstQuestion returns the opening prompt for a category
func (s *QuizService) FirstQuestion(externalID, category string) (*Question, error) {
	if err := s.auth.RequireAuth(externalID); err != nil {
		return nil, err
	}
	questions, ok := quizQuestions[category]
	if !ok {
		return nil, ErrUnknownCategory
	}
	q := questions[0]
	return &q, nil
}

// SubmitAnswer records one answer. The question index must be exactly one
// past the number of answers already recorded for the (user, category)
// pair; anything else is rejected with ErrInvalidSequence. The third
// answer completes the run: the classification is computed, the summary
// persisted to the account, progress reset, and the result returned.
// When persisting fails the final answer is dropped again so it can be
// resubmitted once storage recovers.
func (s *QuizService) SubmitAnswer(externalID, category string, questionIndex int, choice string) (*SubmitOutcome, error) {
	if err := s.auth.RequireAuth(externalID); err != nil {
		return nil, err
	}
	questions, ok := quizQuestions[category]
	if !ok {
		return nil, ErrUnknownCategory
	}

	answers, err := s.recordAnswer(externalID, category, questionIndex, choice)
	if err != nil {
		return nil, err
	}

	s.engagement.RecordActivity(externalID)

	if len(answers) < questionCount {
		next := questions[len(answers)]
		return &SubmitOutcome{Next: &next}, nil
	}

	classification := classify(answers)
	if err := s.users.UpdateQuizResult(externalID, classification.Summary()); err != nil {
		s.dropLastAnswer(externalID, category)
		return nil, err
	}
	s.clearRun(externalID, category)

	return &SubmitOutcome{Result: &QuizResult{
		Category:       category,
		Classification: classification,
		Resources:      resourceCatalog[topicForProfession(classification.Profession)],
	}}, nil
}

// recordAnswer appends the answer under the lock and returns the run so far
func (s *QuizService) recordAnswer(externalID, category string, questionIndex int, choice string) ([]models.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byCategory, ok := s.progress[externalID]
	if !ok {
		byCategory = make(map[string][]models.Answer)
		s.progress[externalID] = byCategory
	}

	answers := byCategory[category]
	if questionIndex != len(answers)+1 {
		return nil, ErrInvalidSequence
	}

	answers = append(answers, models.Answer{
		Question:   questionIndex,
		Choice:     choice,
		AnsweredAt: time.Now().UTC(),
	})

	byCategory[category] = answers
	return answers, nil
}

// clearRun resets a completed run once its summary has been persisted,
// so the category can be started again from question one
func (s *QuizService) clearRun(externalID, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.progress[externalID], category)
}

// dropLastAnswer undoes the most recent append when persisting the
// summary fails, so the final answer can be resubmitted
func (s *QuizService) dropLastAnswer(externalID, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	answers := s.progress[externalID][category]
	if n := len(answers); n > 0 {
		s.progress[externalID][category] = answers[:n-1]
	}
}

// classify computes the outcome tuple from a completed run
func classify(answers []models.Answer) models.Classification {
	level, ok := classificationTable.languageLevels[answers[0].Choice]
	if !ok {
		level = classificationTable.defaultLevel
	}

	profession, ok := classificationTable.professions[answers[1].Choice]
	if !ok {
		profession = classificationTable.defaultProfession
	}

	return models.Classification{
		LanguageLevel: level[0],
		Institution:   level[1],
		Profession:    profession,
	}
}

// topicForProfession maps a classified profession onto the resource catalog
func topicForProfession(profession string) string {
	switch profession {
	case "Engineering / Software":
		return "software"
	case "Design / Arts":
		return "design"
	default:
		return "entrepreneurship"
	}
}

// Resources returns the recommended links for a topic
func (s *QuizService) Resources(topic string) ([]string, error) {
	links, ok := resourceCatalog[topic]
	if !ok {
		return nil, ErrUnknownTopic
	}
	return links, nil
}

// CareerAdvice returns the one-line guidance text for a career topic
func (s *QuizService) CareerAdvice(topic string) (string, error) {
	advice, ok := careerAdvice[topic]
	if !ok {
		return "", ErrUnknownTopic
	}
	return advice, nil
}
