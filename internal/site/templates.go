package site

const homepageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.SiteName}}</title>
<meta name="description" content="Practical personal finance guides from {{.SiteName}}.">
<link rel="stylesheet" href="/assets/style.css">
</head>
<body>
<header>
<h1><a href="/">{{.SiteName}}</a></h1>
<nav><a href="/articles/">All Articles</a></nav>
</header>
<main>
<section class="latest-articles">
{{range .Articles}}<article class="card">
<h2><a href="{{.URL}}">{{.Title}}</a></h2>
<p class="meta"><span class="category">{{.Category}}</span> · <time>{{.Date}}</time></p>
<p>{{.MetaDescription}}</p>
</article>
{{end}}</section>
</main>
<footer>
<p>&copy; {{.SiteName}}. Educational content, not financial advice.</p>
</footer>
</body>
</html>
`

const listingTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>All Articles | {{.SiteName}}</title>
<link rel="stylesheet" href="/assets/style.css">
</head>
<body>
<header>
<h1><a href="/">{{.SiteName}}</a></h1>
</header>
<main>
<h2>All Articles</h2>
<ul class="article-list">
{{range .Articles}}<li>
<a href="{{.URL}}">{{.Title}}</a>
<span class="meta">{{.Category}} · {{.Date}}</span>
</li>
{{end}}</ul>
</main>
<footer>
<p>&copy; {{.SiteName}}. Educational content, not financial advice.</p>
</footer>
</body>
</html>
`

const articleTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Article.Title}} | {{.SiteName}}</title>
<meta name="description" content="{{.Article.MetaDescription}}">
<link rel="canonical" href="{{.BaseURL}}{{.Article.URL}}">
<link rel="stylesheet" href="/assets/style.css">
</head>
<body>
<header>
<h1><a href="/">{{.SiteName}}</a></h1>
</header>
<main>
<article>
<p class="meta"><span class="category">{{.Article.Category}}</span> · <time>{{.Article.Date}}</time></p>
{{.Article.Content}}
{{if .Article.CTA}}<aside class="cta">{{.Article.CTA}}</aside>
{{end}}</article>
</main>
<footer>
<p>&copy; {{.SiteName}}. Educational content, not financial advice.</p>
</footer>
</body>
</html>
`
