package helpers

import (
	"fmt"
	"html"
	"strings"
	"time"

	"blogcms/internal/models"
)

func layout(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>%s</title>
  </head>
  <body style="font-family:Arial,sans-serif;background:#f7f7f7;margin:0;">
    <main style="max-width:760px;margin:0 auto;padding:32px 16px;background:#fff;">
%s
    </main>
  </body>
</html>
`, html.EscapeString(title), body)
}

// BuildPostPage wraps already rendered post content into a public page.
func BuildPostPage(p *models.Post, renderedHTML string) string {
	var meta []string
	if p.Author != "" {
		meta = append(meta, html.EscapeString(p.Author))
	}
	if p.PublishedAt != nil {
		meta = append(meta, p.PublishedAt.Format("January 2, 2006"))
	}
	if p.ReadTime != nil && *p.ReadTime != "" {
		meta = append(meta, html.EscapeString(*p.ReadTime))
	}

	var excerpt string
	if p.Excerpt != nil && *p.Excerpt != "" {
		excerpt = fmt.Sprintf(`      <p style="font-size:18px;color:#555;">%s</p>`+"\n", html.EscapeString(*p.Excerpt))
	}

	body := fmt.Sprintf(`      <h1 style="margin-top:0;">%s</h1>
      <p style="font-size:13px;color:#999;">%s</p>
%s      %s`, html.EscapeString(p.Title), strings.Join(meta, " · "), excerpt, renderedHTML)

	return layout(p.Title, body)
}

func BuildNotFoundPage() string {
	return layout("Not found", `      <h1>404</h1>
      <p>The page you are looking for does not exist.</p>`)
}

// BuildLoginPage posts credentials to /api/login and follows up to the dashboard.
func BuildLoginPage(next, errMsg string) string {
	var errBlock string
	if errMsg != "" {
		errBlock = fmt.Sprintf(`      <p style="color:#c0392b;">%s</p>`+"\n", html.EscapeString(errMsg))
	}
	body := fmt.Sprintf(`      <h2 style="color:#2d74da;margin-top:0;">Sign in</h2>
%s      <form id="login" data-next="%s" style="display:flex;flex-direction:column;gap:12px;max-width:320px;">
        <input name="email" type="email" placeholder="Email" required>
        <input name="password" type="password" placeholder="Password" required>
        <button type="submit">Sign in</button>
      </form>
      <script>
        document.getElementById('login').addEventListener('submit', async (e) => {
          e.preventDefault();
          const f = new FormData(e.target);
          const res = await fetch('/api/login', {
            method: 'POST',
            headers: {'Content-Type': 'application/json'},
            body: JSON.stringify({email: f.get('email'), password: f.get('password')}),
          });
          if (res.ok) { window.location = e.target.dataset.next; } else { alert('Invalid email or password'); }
        });
      </script>`, errBlock, html.EscapeString(next))
	return layout("Sign in", body)
}

// BuildDashboardPage renders the admin overview with counts and monthly bars.
func BuildDashboardPage(stats *models.DashboardStats) string {
	var rows strings.Builder
	for _, m := range stats.PostsPerMonth {
		fmt.Fprintf(&rows, `          <tr><td>%s</td><td>%d</td></tr>`+"\n", html.EscapeString(m.Month), m.Count)
	}
	body := fmt.Sprintf(`      <h2 style="margin-top:0;">Dashboard</h2>
      <p>Total posts: <b>%d</b> · Published: <b>%d</b> · Drafts: <b>%d</b></p>
      <table width="100%%" cellpadding="6">
        <thead><tr><th align="left">Month</th><th align="left">Published</th></tr></thead>
        <tbody>
%s        </tbody>
      </table>
      <p><a href="/dashboard/posts">Manage posts</a></p>`,
		stats.TotalPosts, stats.PublishedPosts, stats.DraftPosts, rows.String())
	return layout("Dashboard", body)
}

func BuildPostsPage(posts []*models.Post) string {
	var rows strings.Builder
	for _, p := range posts {
		status := "draft"
		if p.Published {
			status = "published"
		}
		fmt.Fprintf(&rows, `          <tr><td><a href="/blog/%s">%s</a></td><td>%s</td><td>%s</td></tr>`+"\n",
			html.EscapeString(p.Slug), html.EscapeString(p.Title), status, p.CreatedAt.Format(time.DateOnly))
	}
	body := fmt.Sprintf(`      <h2 style="margin-top:0;">Posts</h2>
      <table width="100%%" cellpadding="6">
        <thead><tr><th align="left">Title</th><th align="left">Status</th><th align="left">Created</th></tr></thead>
        <tbody>
%s        </tbody>
      </table>
      <p><a href="/dashboard">Back to dashboard</a></p>`, rows.String())
	return layout("Posts", body)
}
