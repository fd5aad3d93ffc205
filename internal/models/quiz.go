// quiz.go
package models

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// Quiz is one multiple-choice question. CorrectAnswer is an index into
// Options.
type Quiz struct {
	ID            int      `yaml:"id" json:"id"`
	Question      string   `yaml:"question" json:"question"`
	Options       []string `yaml:"options" json:"options"`
	CorrectAnswer int      `yaml:"correct_answer" json:"correctAnswer"`
}

// QuizBank holds the question sets per difficulty level.
type QuizBank struct {
	Easy   []Quiz `yaml:"easy"`
	Medium []Quiz `yaml:"medium"`
	Hard   []Quiz `yaml:"hard"`
}

// LoadQuizBank reads and parses the quizzes.yaml file.
func LoadQuizBank(path string) (*QuizBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz bank file: %w", err)
	}

	var bank QuizBank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quiz bank YAML: %w", err)
	}

	return &bank, nil
}

// ForDifficulty returns the question set for the given difficulty.
func (b *QuizBank) ForDifficulty(difficulty string) ([]Quiz, bool) {
	switch difficulty {
	case DifficultyEasy:
		return b.Easy, true
	case DifficultyMedium:
		return b.Medium, true
	case DifficultyHard:
		return b.Hard, true
	}
	return nil, false
}

// Find looks up a question by difficulty and id.
func (b *QuizBank) Find(difficulty string, id int) (*Quiz, bool) {
	quizzes, ok := b.ForDifficulty(difficulty)
	if !ok {
		return nil, false
	}
	for i := range quizzes {
		if quizzes[i].ID == id {
			return &quizzes[i], true
		}
	}
	return nil, false
}

// ShuffledQuizzes returns a randomized copy of the given question set.
func ShuffledQuizzes(quizzes []Quiz) []Quiz {
	shuffled := make([]Quiz, len(quizzes))
	copy(shuffled, quizzes)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
