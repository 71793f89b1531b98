package models

// UnsavedCardID marks a card that exists in a submitted form but has no
// database row yet.
const UnsavedCardID = -1

// Card is one term/definition pair in a set. Either side can carry an
// uploaded image: the URL is what the client renders, the key is the opaque
// handle the file store needs to delete the upload again. An empty string
// means "no image" on both columns.
type Card struct {
	ID            int    `gorm:"primaryKey" json:"id"`
	SetID         string `gorm:"not null;index" json:"setId"`
	Term          string `gorm:"not null" json:"term"`
	TermURL       string `json:"termUrl"`
	TermKey       string `json:"termKey"`
	Definition    string `gorm:"not null" json:"definition"`
	DefinitionURL string `json:"definitionUrl"`
	DefinitionKey string `json:"definitionKey"`
}

// FileKeys returns the storage keys of every image attached to the card.
func (c Card) FileKeys() []string {
	var keys []string
	if c.TermKey != "" {
		keys = append(keys, c.TermKey)
	}
	if c.DefinitionKey != "" {
		keys = append(keys, c.DefinitionKey)
	}
	return keys
}

// CardInput is one card as submitted by the editor form. ID is UnsavedCardID
// for rows the user added during this edit.
type CardInput struct {
	ID            int    `json:"id"`
	Term          string `json:"term"`
	TermURL       string `json:"termUrl"`
	TermKey       string `json:"termKey"`
	Definition    string `json:"definition"`
	DefinitionURL string `json:"definitionUrl"`
	DefinitionKey string `json:"definitionKey"`
}

// Card converts the input into a row for setID. Unsaved cards come out with a
// zero ID so the database assigns one on insert.
func (in CardInput) Card(setID string) Card {
	id := in.ID
	if id == UnsavedCardID {
		id = 0
	}
	return Card{
		ID:            id,
		SetID:         setID,
		Term:          in.Term,
		TermURL:       in.TermURL,
		TermKey:       in.TermKey,
		Definition:    in.Definition,
		DefinitionURL: in.DefinitionURL,
		DefinitionKey: in.DefinitionKey,
	}
}
