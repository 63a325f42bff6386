package service

import (
	"bytes"
	"html/template"

	"seyone-academy-go/internal/model"
)

var certificateTmpl = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Certificate of Completion - {{.CourseName}}</title>
<style>
body { font-family: Georgia, serif; background: #fff; color: #1A1A1B; }
.frame { border: 16px solid #1A1A1B; margin: 16px; padding: 64px; text-align: center; }
.name { font-size: 48px; font-weight: 900; border-bottom: 2px solid #f1f5f9; display: inline-block; padding-bottom: 24px; }
.course { color: #76BC21; font-size: 24px; font-weight: 900; text-transform: uppercase; }
.footer { display: flex; justify-content: space-between; margin-top: 64px; border-top: 1px solid #f1f5f9; padding-top: 48px; }
</style>
</head>
<body>
<div class="frame">
<h3>CERTIFICATE OF COMPLETION</h3>
<p>This is to certify that</p>
<h2 class="name">{{.StudentName}}</h2>
<p>Has successfully completed the comprehensive training and assessment requirements for the professional course:</p>
<h4 class="course">{{.CourseName}}</h4>
<div class="footer">
<div><small>DATE ISSUED</small><p><strong>{{.Date}}</strong></p></div>
<div><em>Dr. Sarah Chen</em><p><small>ACADEMY DIRECTOR</small></p></div>
</div>
</div>
</body>
</html>
`))

// RenderCertificate returns the printable HTML for c.
func RenderCertificate(c model.Certificate) (string, error) {
	var buf bytes.Buffer
	if err := certificateTmpl.Execute(&buf, c); err != nil {
		return "", err
	}
	return buf.String(), nil
}
