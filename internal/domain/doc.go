// Package domain contains the core vocabulary entities (languages, dictionaries,
// cards and their example sentences), the rating model and the validation rules
// that every persisted value must satisfy. It has no knowledge of storage or
// presentation.
package domain
