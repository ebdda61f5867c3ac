package document

import (
	"bytes"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func Test_Extract(t *testing.T) {
	t.Run("should reject unknown extensions", func(t *testing.T) {
		_, err := Extract("statement.docx", []byte("income"))
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("should reject files over the limit", func(t *testing.T) {
		_, err := Extract("big.txt", bytes.Repeat([]byte("a"), MaxFileSize+1))
		require.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("should reject blank files", func(t *testing.T) {
		_, err := Extract("blank.txt", []byte(" \n\t "))
		require.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("should reject content that does not match the extension", func(t *testing.T) {
		_, err := Extract("statement.pdf", []byte("just some text"))
		require.ErrorIs(t, err, ErrUnsupportedFormat)

		_, err = Extract("notes.txt", pngHeader)
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("should keep plain text as is", func(t *testing.T) {
		req := require.New(t)
		out, err := Extract("Notes.TXT", []byte("  Salary: ₹85,000\nRent: ₹25,000  "))
		req.NoError(err)
		req.Equal(KindText, out.Kind)
		req.Equal("text/plain", out.MIMEType)
		req.Equal("Salary: ₹85,000\nRent: ₹25,000", out.Text)
		req.False(out.Inline())
	})

	t.Run("should report text/plain for comma separated text", func(t *testing.T) {
		req := require.New(t)
		out, err := Extract("budget.txt", []byte("Rent, 25000\nGroceries, 8000\n"))
		req.NoError(err)
		req.Equal(KindText, out.Kind)
		req.Equal("text/plain", out.MIMEType)
		req.Equal("Rent, 25000\nGroceries, 8000", out.Text)
	})

	t.Run("should extract visible html text", func(t *testing.T) {
		req := require.New(t)
		page := `<html><head><style>p{color:red}</style></head><body><script>var x = 1</script><h1>Salary</h1><p>₹50,000 per month</p></body></html>`
		out, err := Extract("statement.html", []byte(page))
		req.NoError(err)
		req.Equal(KindHTML, out.Kind)
		req.Equal("text/html", out.MIMEType)
		req.Equal("Salary\n₹50,000 per month", out.Text)
	})

	t.Run("should pass images inline", func(t *testing.T) {
		req := require.New(t)
		out, err := Extract("receipt.png", pngHeader)
		req.NoError(err)
		req.Equal(KindImage, out.Kind)
		req.Equal("image/png", out.MIMEType)
		req.True(out.Inline())
		req.Equal(pngHeader, out.Data)
	})

	t.Run("should pass unreadable pdfs inline", func(t *testing.T) {
		req := require.New(t)
		data := []byte("%PDF-1.4\n%broken body without xref\n")
		out, err := Extract("scan.pdf", data)
		req.NoError(err)
		req.Equal(KindPDF, out.Kind)
		req.Equal("application/pdf", out.MIMEType)
		req.True(out.Inline())
	})
}

func Test_ExtractLinks(t *testing.T) {
	req := require.New(t)
	base, err := url.Parse("https://docs.example.com/guide/")
	req.NoError(err)

	page := `<body>
		<a href="taxes">Taxes</a>
		<a href="/guide/taxes?tab=2#top">Taxes again</a>
		<a href="#section">Anchor</a>
		<a href="https://other.example.com/x">Other host</a>
		<a href="/static/site.css">CSS</a>
		<a href="mailto:help@example.com">Mail</a>
		<a href="../funds.html">Funds</a>
	</body>`

	req.Equal([]string{
		"https://docs.example.com/guide/taxes",
		"https://docs.example.com/funds.html",
	}, ExtractLinks(page, base))
}
