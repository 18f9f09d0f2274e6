package http

// Suggestions godoc
// @Summary Product suggestions
// @Description Up to six products whose name or category contains q. Queries shorter than two characters return nothing.
// @Tags Search
// @Produce json
// @Param q query string true "Typed query"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 502 {object} object{success=bool,error=string}
// @Router /api/search/suggestions [get]
func (h *SearchHandler) SuggestionsDoc() {}

// Trending godoc
// @Summary Trending search terms
// @Tags Search
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/search/trending [get]
func (h *SearchHandler) TrendingDoc() {}

// History godoc
// @Summary Recent searches of the session
// @Tags Search
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/search/history [get]
func (h *SearchHandler) HistoryDoc() {}

// CommitSearch godoc
// @Summary Commit a search
// @Description Records the query at the front of the history (deduplicated, five entries kept)
// @Tags Search
// @Accept json
// @Produce json
// @Param request body object{query=string} true "Search"
// @Success 200 {object} object{success=bool,data=object{action=string,target=string,query=string}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/search/history [post]
func (h *SearchHandler) CommitSearchDoc() {}

// ClearHistory godoc
// @Summary Clear the search history
// @Tags Search
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Router /api/search/history [delete]
func (h *SearchHandler) ClearHistoryDoc() {}

// Typeahead godoc
// @Summary Live search bar state
// @Tags Search
// @Produce json
// @Success 200 {object} object{success=bool,data=object{query=string,state=string,suggestions=array,open=bool,items=array,selected=int}}
// @Router /api/search/typeahead [get]
func (h *SearchHandler) TypeaheadViewDoc() {}

// TypeaheadInput godoc
// @Summary Send a keystroke
// @Description Replaces the input text and restarts the debounce window
// @Tags Search
// @Accept json
// @Produce json
// @Param request body object{text=string,focus=bool} true "Input"
// @Success 202 {object} object{success=bool,data=object}
// @Router /api/search/typeahead [post]
func (h *SearchHandler) TypeaheadInputDoc() {}

// TypeaheadKey godoc
// @Summary Send a navigation key
// @Tags Search
// @Accept json
// @Produce json
// @Param request body object{key=string} true "ArrowDown, ArrowUp, Enter or Escape"
// @Success 200 {object} object{success=bool,data=object{action=string,target=string}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/search/typeahead/keys [post]
func (h *SearchHandler) TypeaheadKeyDoc() {}
