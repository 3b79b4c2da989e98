package controllers

import "html/template"

// Templates builds the embedded page templates served by the app.
func Templates() *template.Template {
	t := template.New("")
	template.Must(t.New("login.html").Parse(loginHTML))
	template.Must(t.New("index.html").Parse(indexHTML))
	template.Must(t.New("admin.html").Parse(adminHTML))
	return t
}

const loginHTML = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Iniciar Sesión - Sistema de Rutas</title>
</head>
<body>
  {{range .Flashes}}<div class="flash flash-{{.Category}}">{{.Message}}</div>{{end}}
  <h1>Sistema de Gestión de Rutas</h1>
  <form method="post" action="/login">
    <label>Usuario <input type="text" name="username" required autofocus></label>
    <label>Contraseña <input type="password" name="password" required></label>
    <button type="submit">Iniciar Sesión</button>
  </form>
</body>
</html>`

const indexHTML = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Reporte de Rutas</title>
</head>
<body>
  {{range .Flashes}}<div class="flash flash-{{.Category}}">{{.Message}}</div>{{end}}
  <h1>Reporte Diario de Rutas</h1>
  <form id="reporte-form">
    <label>Contratista
      <select id="contratista" name="contratista" required>
        <option value="">Seleccione...</option>
        {{range .Contratistas}}<option value="{{.}}">{{.}}</option>{{end}}
      </select>
    </label>
    <label>Ruta <select id="ruta_id" name="ruta_id" required></select></label>
    <label>Clientes pendientes <input type="number" name="clientes_pendientes" min="0" required></label>
    <label>Cajas en camión <input type="number" name="cajas_camion" min="0" required></label>
    <label>Hora aproximada de ingreso <input type="time" name="hora_aproximada_ingreso" required></label>
    <label>Ubicación exacta <input type="text" name="ubicacion_exacta"></label>
    <label>Comentarios <textarea name="comentarios"></textarea></label>
    <label>Reportado por <input type="text" name="reportado_por"></label>
    <button type="submit">Enviar Reporte</button>
  </form>
  <script>
    document.getElementById('contratista').addEventListener('change', async (e) => {
      const sel = document.getElementById('ruta_id');
      sel.innerHTML = '';
      if (!e.target.value) return;
      const rutas = await (await fetch('/get_rutas/' + encodeURIComponent(e.target.value))).json();
      for (const r of rutas) {
        const opt = document.createElement('option');
        opt.value = r.id;
        opt.textContent = r.ruta + ' (' + r.codigo + ')';
        sel.appendChild(opt);
      }
    });
    document.getElementById('reporte-form').addEventListener('submit', async (e) => {
      e.preventDefault();
      const form = new FormData(e.target);
      const body = {
        contratista: form.get('contratista'),
        ruta_id: parseInt(form.get('ruta_id'), 10) || 0,
        clientes_pendientes: parseInt(form.get('clientes_pendientes'), 10) || 0,
        cajas_camion: parseInt(form.get('cajas_camion'), 10) || 0,
        hora_aproximada_ingreso: form.get('hora_aproximada_ingreso'),
        ubicacion_exacta: form.get('ubicacion_exacta'),
        comentarios: form.get('comentarios'),
        reportado_por: form.get('reportado_por')
      };
      const resp = await fetch('/submit_reporte', {
        method: 'POST',
        headers: {'Content-Type': 'application/json'},
        body: JSON.stringify(body)
      });
      const result = await resp.json();
      alert(result.success ? result.message : result.error);
      if (result.success) e.target.reset();
    });
  </script>
</body>
</html>`

const adminHTML = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Panel de Administración - Reportes de Rutas</title>
</head>
<body>
  {{range .Flashes}}<div class="flash flash-{{.Category}}">{{.Message}}</div>{{end}}
  <h1>Reportes de Rutas</h1>
  <p>Sesión: {{.Username}} | <a href="/export_reportes?fecha={{.FechaFiltro}}">Exportar Excel</a>
    | <a href="/crear_reporte_prueba">Crear Reporte de Prueba</a>
    {{if .IsAdmin}} | <a href="/reload_rutas">Recargar Rutas</a>{{end}}
    | <a href="/logout">Cerrar Sesión</a></p>
  <form method="get" action="/admin">
    <label>Fecha <input type="date" name="fecha" value="{{.FechaFiltro}}"></label>
    <label>Contratista
      <select name="contratista">
        <option value="">Todos</option>
        {{$sel := .ContratistaFiltro}}
        {{range .Contratistas}}<option value="{{.}}" {{if eq . $sel}}selected{{end}}>{{.}}</option>{{end}}
      </select>
    </label>
    <button type="submit">Filtrar</button>
  </form>
  <table border="1">
    <tr>
      <th>ID</th><th>Hora</th><th>Contratista</th><th>Ruta</th><th>Supervisor</th><th>Placa</th>
      <th>Clientes</th><th>Cajas</th><th>Ingreso</th><th>Ubicación</th><th>Estado</th><th>Reportado por</th>
    </tr>
    {{range .Reportes}}
    <tr>
      <td>{{.ID}}</td>
      <td>{{.HoraReporte.Format "15:04:05"}}</td>
      <td>{{.Contratista}}</td>
      <td>{{.RutaCodigo}}</td>
      <td>{{.Supervisor}}</td>
      <td>{{.Placa}}</td>
      <td>{{.ClientesPendientes}}</td>
      <td>{{.CajasCamion}}</td>
      <td>{{.HoraAproximadaIngreso}}</td>
      <td>{{.UbicacionExacta}}</td>
      <td>
        {{$estado := .Estado}}
        <select class="estado-select" data-id="{{.ID}}">
          <option value="activo" {{if eq $estado "activo"}}selected{{end}}>activo</option>
          <option value="completado" {{if eq $estado "completado"}}selected{{end}}>completado</option>
          <option value="cancelado" {{if eq $estado "cancelado"}}selected{{end}}>cancelado</option>
        </select>
      </td>
      <td>{{.ReportadoPor}}</td>
    </tr>
    {{end}}
  </table>
  <script>
    document.querySelectorAll('.estado-select').forEach(function (sel) {
      sel.addEventListener('change', function () {
        fetch('/update_reporte_status', {
          method: 'POST',
          headers: {'Content-Type': 'application/json', 'Accept': 'application/json'},
          body: JSON.stringify({reporte_id: parseInt(sel.dataset.id, 10), status: sel.value})
        }).then(function (resp) { return resp.json(); }).then(function (data) {
          if (!data.success) {
            alert('Error actualizando estado: ' + (data.error || 'desconocido'));
          }
        }).catch(function () {
          alert('Error actualizando estado');
        });
      });
    });
  </script>
  {{with .Pagination}}
  <p>
    Total: {{.Total}} reportes, página {{.Page}} de {{.TotalPages}}.
    {{if .HasPrev}}<a href="/admin?fecha={{$.FechaFiltro}}&contratista={{$.ContratistaFiltro}}&page={{.PrevPage}}&per_page={{.PerPage}}">&laquo; Anterior</a>{{end}}
    {{$p := .}}
    {{range .Pages}}
      {{if eq . $p.Page}}<strong>{{.}}</strong>{{else}}<a href="/admin?fecha={{$.FechaFiltro}}&contratista={{$.ContratistaFiltro}}&page={{.}}&per_page={{$p.PerPage}}">{{.}}</a>{{end}}
    {{end}}
    {{if .HasNext}}<a href="/admin?fecha={{$.FechaFiltro}}&contratista={{$.ContratistaFiltro}}&page={{.NextPage}}&per_page={{.PerPage}}">Siguiente &raquo;</a>{{end}}
  </p>
  {{end}}
</body>
</html>`
