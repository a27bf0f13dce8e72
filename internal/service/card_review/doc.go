// Package card_review runs multiple-choice quizzes and weak-card repetition
// over a dictionary, adjusting card ratings from the answers.
package card_review
