package confirm

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
)

// Token is the form value a confirmed request must carry.
const Token = "confirm"

// Required reports whether the request still needs user confirmation.
func Required(r *http.Request) bool {
	return r.FormValue(Token) != "yes"
}

var promptTmpl = template.Must(template.New("confirm").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Confirm - CCSFP Clinic</title>
<link rel="stylesheet" href="/static/styles.css">
</head>
<body>
<main id="confirm-section" class="section active">
<h1>Are you sure?</h1>
<p>{{.Prompt}}</p>
<form method="post" action="{{.Action}}">
<input type="hidden" name="confirm" value="yes" />
<button type="submit" id="confirm-btn">Yes, continue</button>
</form>
<a id="confirm-cancel" href="{{.Cancel}}">Cancel</a>
</main>
</body>
</html>
`))

// Prompt renders the interstitial confirmation page. Action is re-posted
// with the confirmation token; Cancel navigates away without side effects.
func Prompt(w http.ResponseWriter, prompt, action, cancel string) {
	var buf bytes.Buffer
	err := promptTmpl.Execute(&buf, struct {
		Prompt, Action, Cancel string
	}{prompt, action, cancel})
	if err != nil {
		log.Printf("Failed to render confirmation page: %v", err)
		http.Error(w, "failed to render confirmation page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
