package httpserver

import (
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/words"
)

// stateView is the client-facing rendering of a game.State.
// The word itself is only included once the game is over.
type stateView struct {
	Theme           words.Theme              `json:"theme"`
	Title           string                   `json:"title"`
	Status          game.Status              `json:"status"`
	Masked          string                   `json:"masked"`
	Hint            string                   `json:"hint"`
	Word            string                   `json:"word,omitempty"`
	GuessedLetters  []string                 `json:"guessedLetters"`
	Keys            map[string]game.KeyState `json:"keys"`
	HintLetters     []string                 `json:"hintLetters"`
	WrongGuesses    int                      `json:"wrongGuesses"`
	MaxWrongGuesses int                      `json:"maxWrongGuesses"`
	Figure          []string                 `json:"figure"`
	GameOver        bool                     `json:"gameOver"`
	Result          string                   `json:"result"`
	Wins            int                      `json:"wins"`
	Losses          int                      `json:"losses"`
	Daily           bool                     `json:"daily"`
}

func (s *Server) view(st game.State, daily bool) stateView {
	v := stateView{
		Theme:           st.Theme,
		Title:           s.catalog.Title(st.Theme),
		Status:          st.Status(),
		Masked:          st.Masked(),
		Hint:            st.Hint,
		GuessedLetters:  st.GuessedLetters,
		Keys:            make(map[string]game.KeyState, len(st.GuessedLetters)),
		HintLetters:     st.VisibleHints(),
		WrongGuesses:    st.WrongGuesses,
		MaxWrongGuesses: st.MaxWrongGuesses,
		Figure:          st.Figure(),
		GameOver:        st.GameOver,
		Result:          st.Result(),
		Wins:            st.Wins,
		Losses:          st.Losses,
		Daily:           daily,
	}
	for _, l := range st.GuessedLetters {
		v.Keys[l] = st.KeyState(l)
	}
	if st.GameOver {
		v.Word = st.Word
	}
	return v
}
