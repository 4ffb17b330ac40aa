// Package export turns resume text into PDF and DOCX files.
//
// PDF export walks an ordered chain of attempts and keeps the first that
// produces output:
//
//	rod                 headless Chrome via go-rod
//	chromedp            headless Chrome via chromedp
//	markup-basic        rendered markup reduced to basic tags, written with fpdf
//	markup-basic-bytes  same, re-read from bytes with lossy transliteration;
//	                    runs only after an internal renderer error
//	plain-text          markdown flattened to lines, fixed fpdf styles
//
// Every attempt renders into memory; only the winner is written to a
// temporary file owned by the caller. DOCX export has no chain.
package export
