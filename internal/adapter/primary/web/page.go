package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleRoot(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(launcherPage))
}

const launcherPage = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Shutdown Timer</title>
    <style>
        body { font-family: sans-serif; max-width: 600px; margin: 50px auto; padding: 20px; }
        h1 { color: #333; }
        input { width: 100%; padding: 10px; font-size: 1.1em; box-sizing: border-box; }
        .result { background: #f0f0f0; padding: 12px 15px; border-radius: 5px; margin: 10px 0; }
        .result.action { cursor: pointer; }
        .result.action:hover { background: #dde8f7; }
        .subtitle { color: #666; font-size: 0.9em; }
        .info { padding: 10px 15px; border-radius: 5px; margin: 20px 0; display: none; }
        .info.ok { background: #e3f5e1; display: block; }
        .info.error { background: #f9e0e0; display: block; }
    </style>
</head>
<body>
    <h1>Shutdown Timer</h1>
    <input id="query" placeholder="10s, 5m, 2h, 1d or 10 (minutes)" autofocus>
    <div id="results"></div>
    <div class="info" id="outcome"></div>
    <script>
        const box = document.getElementById('query');

        async function refresh() {
            const res = await fetch('/api/query?q=' + encodeURIComponent(box.value));
            const data = await res.json();
            const list = document.getElementById('results');
            list.innerHTML = '';
            for (const r of data.results) {
                const el = document.createElement('div');
                el.className = 'result' + (r.action ? ' action' : '');
                el.innerHTML = '<div></div><div class="subtitle"></div>';
                el.children[0].textContent = r.title;
                el.children[1].textContent = r.subtitle;
                if (r.action) {
                    el.onclick = () => confirmAction(r.action);
                }
                list.appendChild(el);
            }
        }

        async function confirmAction(action) {
            const res = await fetch(action.kind === 'cancel' ? '/api/cancel' : '/api/execute', {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify({query: box.value})
            });
            const out = await res.json();
            const info = document.getElementById('outcome');
            info.className = 'info ' + out.status;
            info.textContent = out.title + ': ' + out.message;
        }

        box.addEventListener('input', refresh);
        box.addEventListener('keydown', (e) => {
            if (e.key === 'Enter' && box.value.trim() !== '') {
                confirmAction({kind: 'schedule'});
            }
        });
        refresh();
    </script>
</body>
</html>`
