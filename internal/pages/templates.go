package pages

// Built-in page shells. Placeholders are substituted by the generator; the
// surrounding site chrome is deliberately minimal because the host site
// wraps these pages with its own navigation at deploy time.

const coursePageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{TITLE}} | {{ORG_NAME}}</title>
<link rel="canonical" href="{{CANONICAL}}">
</head>
<body>
<main class="course-page">
<h1>{{TITLE}}</h1>
<div class="course-description">{{DESCRIPTION}}</div>
<h2>Upcoming classes</h2>
{{SESSIONS}}
<p><a href="{{SCHEDULE_URL}}">See the full schedule</a></p>
</main>
</body>
</html>
`

const sessionPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{TITLE}} on {{DATE}} | {{ORG_NAME}}</title>
<link rel="canonical" href="{{CANONICAL}}">
{{JSONLD}}
</head>
<body>
<main class="session-page">
<h1>{{TITLE}}</h1>
<p class="session-when">{{DATE}}</p>
<p class="session-where">{{LOCATION}}</p>
{{PRICE_BLOCK}}
<p><a class="register" href="{{REGISTER_URL}}">Register for this class</a></p>
<p><a href="{{ICS_HREF}}">Add to calendar</a></p>
<div class="course-description">{{DESCRIPTION}}</div>
</main>
</body>
</html>
`

const locationPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>CPR Classes in {{CITY_STATE}} | {{ORG_NAME}}</title>
<link rel="canonical" href="{{CANONICAL}}">
</head>
<body>
<main class="location-page">
<h1>Upcoming classes in {{CITY_STATE}}</h1>
{{SESSIONS}}
<p><a href="{{SCHEDULE_URL}}">See the full schedule</a></p>
</main>
</body>
</html>
`
